// Package timezone pins every timestamp the marketplace produces to the
// configured application timezone. Booking windows, schedule spans and promo
// validity all compare times in this zone, so mixing zones would shift slot
// boundaries.
//
// The zone comes from the APP_TIMEZONE environment variable as an IANA name
// such as "Asia/Jakarta" and is loaded when the package is imported. An
// unset or unknown name falls back to UTC.
//
//	now := timezone.Now()
//	opensAt, err := timezone.Parse("2006-01-02 15:04", "2025-06-01 09:00")
//	label := timezone.Format(booking.ScheduledAt, "2006-01-02 15:04")
package timezone
