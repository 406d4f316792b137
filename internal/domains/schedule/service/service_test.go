package service_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"furk/config"
	"furk/infras/otel/mocks"
	scheduleMocks "furk/internal/domains/schedule/mocks"
	"furk/internal/domains/schedule/model"
	"furk/internal/domains/schedule/model/dto"
	"furk/internal/domains/schedule/service"
	cacheMocks "furk/shared/cache/mocks"
	"furk/shared/failure"
)

type fixtures struct {
	hours    *scheduleMocks.MockHours
	breaks   *scheduleMocks.MockBreaks
	closures *scheduleMocks.MockClosures
	cache    *cacheMocks.MockRedisCache
	svc      service.Schedule
}

func newFixtures(t *testing.T) fixtures {
	t.Helper()

	ctrl := gomock.NewController(t)

	hours := scheduleMocks.NewMockHours(ctrl)
	breaks := scheduleMocks.NewMockBreaks(ctrl)
	closures := scheduleMocks.NewMockClosures(ctrl)
	redisCache := cacheMocks.NewMockRedisCache(ctrl)

	redisCache.EXPECT().Get(gomock.Any(), gomock.Any(), gomock.Any()).Return(failure.NotFound("cache")).AnyTimes()
	redisCache.EXPECT().Save(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Return(nil).AnyTimes()
	redisCache.EXPECT().Delete(gomock.Any(), gomock.Any()).Return(nil).AnyTimes()
	redisCache.EXPECT().Clear(gomock.Any(), gomock.Any()).Return(nil).AnyTimes()

	return fixtures{
		hours:    hours,
		breaks:   breaks,
		closures: closures,
		cache:    redisCache,
		svc:      service.New(hours, breaks, closures, &config.Config{}, redisCache, mocks.NewOtel()),
	}
}

func TestScheduleService_ReplaceHours(t *testing.T) {
	tests := []struct {
		name      string
		req       dto.ReplaceHoursRequest
		setupMock func(f fixtures)
		wantErr   string
	}{
		{
			name: "replaces the weekly template",
			req: dto.ReplaceHoursRequest{
				Hours: []dto.HoursEntry{
					{DayOfWeek: 0, OpenTime: "09:00", CloseTime: "17:00"},
					{DayOfWeek: 5, OpenTime: "10:00", CloseTime: "14:00"},
				},
			},
			setupMock: func(f fixtures) {
				f.hours.EXPECT().
					Replace(gomock.Any(), "merchant-1", gomock.Len(2)).
					Return(nil)
			},
		},
		{
			name: "empty template clears every open window",
			req:  dto.ReplaceHoursRequest{},
			setupMock: func(f fixtures) {
				f.hours.EXPECT().
					Replace(gomock.Any(), "merchant-1", gomock.Len(0)).
					Return(nil)
			},
		},
		{
			name: "rejects duplicate day",
			req: dto.ReplaceHoursRequest{
				Hours: []dto.HoursEntry{
					{DayOfWeek: 2, OpenTime: "09:00", CloseTime: "17:00"},
					{DayOfWeek: 2, OpenTime: "18:00", CloseTime: "20:00"},
				},
			},
			setupMock: func(fixtures) {},
			wantErr:   "duplicate hours for day 2",
		},
		{
			name: "rejects close before open",
			req: dto.ReplaceHoursRequest{
				Hours: []dto.HoursEntry{
					{DayOfWeek: 0, OpenTime: "17:00", CloseTime: "09:00"},
				},
			},
			setupMock: func(fixtures) {},
			wantErr:   "end time must be after start time",
		},
		{
			name: "rejects malformed clock time",
			req: dto.ReplaceHoursRequest{
				Hours: []dto.HoursEntry{
					{DayOfWeek: 0, OpenTime: "9am", CloseTime: "17:00"},
				},
			},
			setupMock: func(fixtures) {},
			wantErr:   "invalid clock time",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixtures(t)
			tt.setupMock(f)

			err := f.svc.ReplaceHours(context.Background(), "merchant-1", tt.req)

			if tt.wantErr != "" {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.wantErr)

				return
			}

			assert.NoError(t, err)
		})
	}
}

func TestScheduleService_ToggleClosure(t *testing.T) {
	span := dto.ToggleClosureRequest{
		Start: time.Date(2025, time.June, 12, 0, 0, 0, 0, time.UTC),
		End:   time.Date(2025, time.June, 13, 23, 59, 59, 0, time.UTC),
	}

	t.Run("overlapping closure is removed", func(t *testing.T) {
		f := newFixtures(t)

		existing := model.MerchantClosure{
			ID:         "cl-1",
			MerchantID: "merchant-1",
			StartTime:  time.Date(2025, time.June, 13, 0, 0, 0, 0, time.UTC),
			EndTime:    time.Date(2025, time.June, 15, 23, 59, 59, 0, time.UTC),
		}

		f.closures.EXPECT().
			GetAll(gomock.Any(), gomock.Any(), gomock.Any()).
			Return([]model.MerchantClosure{existing}, nil)
		f.closures.EXPECT().
			Delete(gomock.Any(), gomock.Any()).
			Return(nil)

		res, err := f.svc.ToggleClosure(context.Background(), "merchant-1", span)

		require.NoError(t, err)
		assert.True(t, res.Removed)
		assert.Equal(t, "cl-1", res.ClosureID)
	})

	t.Run("no overlap creates a closure covering the span", func(t *testing.T) {
		f := newFixtures(t)

		f.closures.EXPECT().
			GetAll(gomock.Any(), gomock.Any(), gomock.Any()).
			Return(nil, nil)
		f.closures.EXPECT().
			Insert(gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, mod model.MerchantClosure) error {
				assert.Equal(t, "merchant-1", mod.MerchantID)
				assert.Equal(t, span.Start, mod.StartTime)
				assert.Equal(t, span.End, mod.EndTime)

				return nil
			})

		res, err := f.svc.ToggleClosure(context.Background(), "merchant-1", span)

		require.NoError(t, err)
		assert.False(t, res.Removed)
		require.NotNil(t, res.Closure)
		assert.Equal(t, span.Start, res.Closure.Start)
	})

	t.Run("single day selection expands to whole day", func(t *testing.T) {
		f := newFixtures(t)

		day := time.Date(2025, time.June, 12, 0, 0, 0, 0, time.UTC)

		f.closures.EXPECT().
			GetAll(gomock.Any(), gomock.Any(), gomock.Any()).
			Return(nil, nil)
		f.closures.EXPECT().
			Insert(gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, mod model.MerchantClosure) error {
				assert.Equal(t, day, mod.StartTime)
				assert.Equal(t, time.Date(2025, time.June, 12, 23, 59, 59, 0, time.UTC), mod.EndTime)

				return nil
			})

		_, err := f.svc.ToggleClosure(context.Background(), "merchant-1", dto.ToggleClosureRequest{Start: day, End: day})

		require.NoError(t, err)
	})
}

func TestScheduleService_Breaks(t *testing.T) {
	t.Run("create validates the clock window", func(t *testing.T) {
		f := newFixtures(t)

		_, err := f.svc.CreateBreak(context.Background(), "merchant-1", dto.CreateBreakRequest{
			DayOfWeek: 0,
			StartTime: "13:00",
			EndTime:   "12:00",
		})

		require.Error(t, err)
		assert.Contains(t, err.Error(), "end time must be after start time")
	})

	t.Run("create inserts and returns the break", func(t *testing.T) {
		f := newFixtures(t)

		f.breaks.EXPECT().
			Insert(gomock.Any(), gomock.Any()).
			Return(nil)

		res, err := f.svc.CreateBreak(context.Background(), "merchant-1", dto.CreateBreakRequest{
			DayOfWeek: 2,
			StartTime: "12:00",
			EndTime:   "13:00",
			Label:     "lunch",
		})

		require.NoError(t, err)
		assert.NotEmpty(t, res.ID)
		assert.Equal(t, "lunch", res.Label)
	})

	t.Run("delete of a missing break is not found", func(t *testing.T) {
		f := newFixtures(t)

		f.breaks.EXPECT().
			Exist(gomock.Any(), gomock.Any()).
			Return(false, nil)

		err := f.svc.DeleteBreak(context.Background(), "merchant-1", "missing")

		require.Error(t, err)
		assert.Contains(t, err.Error(), "not found")
	})
}

// A schedule write must clear the cached booking calendar too: the calendar
// response bundles hours, breaks and closures, so a refetch right after a
// closure toggle would otherwise serve the pre-toggle schedule until the TTL
// runs out.
func TestScheduleService_WriteClearsBookingCalendarCache(t *testing.T) {
	ctrl := gomock.NewController(t)

	hours := scheduleMocks.NewMockHours(ctrl)
	breaks := scheduleMocks.NewMockBreaks(ctrl)
	closures := scheduleMocks.NewMockClosures(ctrl)
	redisCache := cacheMocks.NewMockRedisCache(ctrl)

	cleared := make(chan string, 1)

	redisCache.EXPECT().
		Delete(gomock.Any(), "schedule:get:merchant-1").
		Return(nil)
	redisCache.EXPECT().
		Clear(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, prefix string) error {
			cleared <- prefix

			return nil
		})

	closures.EXPECT().
		GetAll(gomock.Any(), gomock.Any(), gomock.Any()).
		Return(nil, nil)
	closures.EXPECT().
		Insert(gomock.Any(), gomock.Any()).
		Return(nil)

	svc := service.New(hours, breaks, closures, &config.Config{}, redisCache, mocks.NewOtel())

	day := time.Date(2025, time.June, 12, 0, 0, 0, 0, time.UTC)

	_, err := svc.ToggleClosure(context.Background(), "merchant-1", dto.ToggleClosureRequest{Start: day, End: day})
	require.NoError(t, err)

	select {
	case prefix := <-cleared:
		assert.Equal(t, "booking:calendar:merchant-1:*", prefix)
	case <-time.After(time.Second):
		t.Fatal("booking calendar cache was never cleared")
	}
}
