package service_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"furk/config"
	kafkaMocks "furk/infras/kafka/mocks"
	"furk/infras/otel/mocks"
	bookingMocks "furk/internal/domains/booking/mocks"
	"furk/internal/domains/booking/model"
	"furk/internal/domains/booking/model/dto"
	"furk/internal/domains/booking/service"
	scheduleMocks "furk/internal/domains/schedule/mocks"
	scheduleModel "furk/internal/domains/schedule/model"
	cacheMocks "furk/shared/cache/mocks"
	"furk/shared/constant"
	gDto "furk/shared/dto"
	"furk/shared/failure"
	gModel "furk/shared/model"
	"furk/shared/timezone"
)

type fixtures struct {
	repo     *bookingMocks.MockBooking
	hours    *scheduleMocks.MockHours
	breaks   *scheduleMocks.MockBreaks
	closures *scheduleMocks.MockClosures
	kafka    *kafkaMocks.MockClient
	svc      service.Booking
}

func newFixtures(t *testing.T) fixtures {
	t.Helper()

	ctrl := gomock.NewController(t)

	repo := bookingMocks.NewMockBooking(ctrl)
	hours := scheduleMocks.NewMockHours(ctrl)
	breaks := scheduleMocks.NewMockBreaks(ctrl)
	closures := scheduleMocks.NewMockClosures(ctrl)
	kafkaClient := kafkaMocks.NewMockClient(ctrl)
	redisCache := cacheMocks.NewMockRedisCache(ctrl)

	redisCache.EXPECT().Get(gomock.Any(), gomock.Any(), gomock.Any()).Return(failure.NotFound("cache")).AnyTimes()
	redisCache.EXPECT().Save(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Return(nil).AnyTimes()
	redisCache.EXPECT().Delete(gomock.Any(), gomock.Any()).Return(nil).AnyTimes()
	redisCache.EXPECT().Clear(gomock.Any(), gomock.Any()).Return(nil).AnyTimes()
	kafkaClient.EXPECT().SendMessages(gomock.Any(), gomock.Any(), gomock.Any()).Return(nil).AnyTimes()

	return fixtures{
		repo:     repo,
		hours:    hours,
		breaks:   breaks,
		closures: closures,
		kafka:    kafkaClient,
		svc:      service.New(repo, hours, breaks, closures, &config.Config{}, redisCache, kafkaClient, mocks.NewOtel()),
	}
}

func confirmedBooking() model.Booking {
	serviceName := "Full Grooming"
	customerName := "Jordan Smith"

	return model.Booking{
		ID:            "bk-1",
		MerchantID:    "merchant-1",
		CustomerID:    "customer-1",
		ServiceID:     "svc-1",
		RequestedAt:   time.Date(2025, time.June, 2, 10, 0, 0, 0, time.UTC),
		Status:        model.StatusConfirmed,
		PaymentStatus: model.PaymentStatusPaid,
		ServiceName:   &serviceName,
		CustomerName:  &customerName,
		Metadata: gModel.Metadata{
			CreatedAt:  timezone.Now(),
			ModifiedAt: timezone.Now(),
			CreatedBy:  "system",
			ModifiedBy: "system",
		},
	}
}

func TestBookingService_CalendarList(t *testing.T) {
	t.Run("bundles bookings with schedule metadata", func(t *testing.T) {
		f := newFixtures(t)

		f.repo.EXPECT().
			GetAll(gomock.Any(), gomock.Any(), gomock.Any()).
			Return([]model.Booking{confirmedBooking()}, nil)
		f.hours.EXPECT().
			GetAll(gomock.Any(), gomock.Any(), gomock.Any()).
			Return([]scheduleModel.MerchantHours{
				{ID: "h-1", MerchantID: "merchant-1", DayOfWeek: 0, OpenTime: "09:00", CloseTime: "17:00"},
			}, nil)
		f.breaks.EXPECT().
			GetAll(gomock.Any(), gomock.Any(), gomock.Any()).
			Return(nil, nil)
		f.closures.EXPECT().
			GetAll(gomock.Any(), gomock.Any(), gomock.Any()).
			Return(nil, nil)

		res, err := f.svc.CalendarList(context.Background(), "merchant-1", dto.CalendarListRequest{
			StartDate: "2025-06-01",
			EndDate:   "2025-06-30",
		})

		require.NoError(t, err)
		require.Len(t, res.Bookings, 1)
		assert.Equal(t, "Full Grooming", res.Bookings[0].ServiceName)
		require.Len(t, res.MerchantHours, 1)
		assert.Equal(t, "09:00", res.MerchantHours[0].OpenTime)
	})

	t.Run("window end is exclusive at the following midnight", func(t *testing.T) {
		f := newFixtures(t)

		f.repo.EXPECT().
			GetAll(gomock.Any(), gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, _ gDto.QueryParams, filter gDto.FilterGroup, _ ...string) ([]model.Booking, error) {
				clause, args := filter.GetWhereClause()

				// A booking starting exactly at the midnight after the last
				// visible day belongs to the next window.
				assert.Contains(t, clause, "< :window_end")
				assert.NotContains(t, clause, "<= :window_end")

				followingMidnight, err := timezone.Parse(constant.DateOnlyFormat, "2025-07-01")
				require.NoError(t, err)
				assert.Equal(t, followingMidnight, args["window_end"])

				return nil, nil
			})
		f.hours.EXPECT().
			GetAll(gomock.Any(), gomock.Any(), gomock.Any()).
			Return(nil, nil)
		f.breaks.EXPECT().
			GetAll(gomock.Any(), gomock.Any(), gomock.Any()).
			Return(nil, nil)
		f.closures.EXPECT().
			GetAll(gomock.Any(), gomock.Any(), gomock.Any()).
			Return(nil, nil)

		_, err := f.svc.CalendarList(context.Background(), "merchant-1", dto.CalendarListRequest{
			StartDate: "2025-06-01",
			EndDate:   "2025-06-30",
		})

		require.NoError(t, err)
	})

	t.Run("rejects malformed window", func(t *testing.T) {
		f := newFixtures(t)

		_, err := f.svc.CalendarList(context.Background(), "merchant-1", dto.CalendarListRequest{
			StartDate: "June 1st",
			EndDate:   "2025-06-30",
		})

		require.Error(t, err)
		assert.Contains(t, err.Error(), "invalid start_date")
	})
}

func TestBookingService_Transition(t *testing.T) {
	tests := []struct {
		name       string
		current    string
		action     string
		wantStatus string
		wantErr    bool
	}{
		{name: "pending confirm", current: model.StatusPending, action: model.ActionConfirm, wantStatus: model.StatusConfirmed},
		{name: "confirmed start", current: model.StatusConfirmed, action: model.ActionStart, wantStatus: model.StatusInProgress},
		{name: "confirmed cancel", current: model.StatusConfirmed, action: model.ActionCancel, wantStatus: model.StatusCancelled},
		{name: "in_progress complete", current: model.StatusInProgress, action: model.ActionComplete, wantStatus: model.StatusCompleted},
		{name: "pending cancel rejected", current: model.StatusPending, action: model.ActionCancel, wantErr: true},
		{name: "pending complete rejected", current: model.StatusPending, action: model.ActionComplete, wantErr: true},
		{name: "completed is terminal", current: model.StatusCompleted, action: model.ActionStart, wantErr: true},
		{name: "cancelled is terminal", current: model.StatusCancelled, action: model.ActionConfirm, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixtures(t)

			booking := confirmedBooking()
			booking.Status = tt.current

			f.repo.EXPECT().
				Get(gomock.Any(), gomock.Any()).
				Return(booking, nil)

			if !tt.wantErr {
				f.repo.EXPECT().
					UpdateCount(gomock.Any(), gomock.Any(), gomock.Any()).
					DoAndReturn(func(_ context.Context, fields map[string]any, filter gDto.FilterGroup) (int64, error) {
						assert.Equal(t, tt.wantStatus, fields[model.FieldStatus])

						// The write is fenced on the status the transition
						// was validated against.
						_, args := filter.GetWhereClause()
						assert.Equal(t, tt.current, args[model.FieldStatus])

						return 1, nil
					})

				updated := booking
				updated.Status = tt.wantStatus

				f.repo.EXPECT().
					Get(gomock.Any(), gomock.Any()).
					Return(updated, nil)
			}

			res, err := f.svc.Transition(context.Background(), "merchant-1", "bk-1", tt.action)

			if tt.wantErr {
				require.Error(t, err)
				assert.Equal(t, 409, failure.GetCode(err))

				return
			}

			require.NoError(t, err)
			assert.Equal(t, tt.wantStatus, res.Status)
		})
	}

	t.Run("booking moved by a concurrent transition conflicts", func(t *testing.T) {
		f := newFixtures(t)

		f.repo.EXPECT().
			Get(gomock.Any(), gomock.Any()).
			Return(confirmedBooking(), nil)

		// Another transition won the race between the read and the write, so
		// the status-fenced update matches nothing.
		f.repo.EXPECT().
			UpdateCount(gomock.Any(), gomock.Any(), gomock.Any()).
			Return(int64(0), nil)

		_, err := f.svc.Transition(context.Background(), "merchant-1", "bk-1", model.ActionCancel)

		require.Error(t, err)
		assert.Equal(t, 409, failure.GetCode(err))
	})

	t.Run("booking owned by another merchant is not found", func(t *testing.T) {
		f := newFixtures(t)

		f.repo.EXPECT().
			Get(gomock.Any(), gomock.Any()).
			Return(model.Booking{}, nil)

		_, err := f.svc.Transition(context.Background(), "merchant-2", "bk-1", model.ActionConfirm)

		require.Error(t, err)
		assert.Equal(t, 404, failure.GetCode(err))
	})
}

func TestBookingService_Create(t *testing.T) {
	f := newFixtures(t)

	f.repo.EXPECT().
		Insert(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, mod model.Booking) error {
			assert.Equal(t, model.StatusPending, mod.Status)
			assert.Equal(t, model.PaymentStatusPending, mod.PaymentStatus)
			assert.Equal(t, "customer-1", mod.CustomerID)
			assert.NotEmpty(t, mod.ID)
			assert.False(t, mod.RequestedAt.IsZero())

			return nil
		})

	res, err := f.svc.Create(context.Background(), "customer-1", dto.CreateBookingRequest{
		MerchantID: "merchant-1",
		ServiceID:  "svc-1",
	})

	require.NoError(t, err)
	assert.Equal(t, model.StatusPending, res.Status)
	assert.Equal(t, []string{model.ActionConfirm}, res.AllowedActions)
}

func TestBookingService_SetPaymentStatus(t *testing.T) {
	f := newFixtures(t)

	f.repo.EXPECT().
		Get(gomock.Any(), gomock.Any()).
		Return(confirmedBooking(), nil)
	f.repo.EXPECT().
		Update(gomock.Any(), gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, fields map[string]any, _ any) error {
			assert.Equal(t, model.PaymentStatusExpired, fields[model.FieldPaymentStatus])

			return nil
		})

	err := f.svc.SetPaymentStatus(context.Background(), "bk-1", model.PaymentStatusExpired)

	assert.NoError(t, err)
}
