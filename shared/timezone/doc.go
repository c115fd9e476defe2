// Package timezone keeps the application location configured by APP_TIMEZONE.
//
// Call Init once at startup; before that every helper works in UTC.
//
//	now := timezone.Now()
//	t, err := timezone.Parse("2006-01-02", "2024-01-01")
//	label := timezone.Format(t, "02 Jan 2006")
package timezone
