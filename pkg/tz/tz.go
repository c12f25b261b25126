package tz

import (
	"fmt"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/rs/zerolog"
)

const (
	// DefaultZone is the viewer zone until a selection is made.
	DefaultZone = "Africa/Johannesburg"

	DateLayout     = "2006-01-02"
	TimeLayout     = "15:04"
	LongDateLayout = "Monday, 02 Jan 2006"
)

// Converter re-expresses a shift's wall-clock time from its source zone in
// the currently selected viewer zone. The viewer zone is the only mutable
// piece of state and is safe for concurrent readers.
type Converter struct {
	mu   sync.RWMutex
	zone string
	log  zerolog.Logger
}

// NewConverter creates a converter displaying times in DefaultZone.
func NewConverter(log zerolog.Logger) *Converter {
	return &Converter{zone: DefaultZone, log: log}
}

// Zone returns the current viewer zone.
func (c *Converter) Zone() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.zone
}

// SetZone selects a new viewer zone. Unknown zone names are rejected so
// conversions never have to fall back because of the viewer's own selection.
func (c *Converter) SetZone(zone string) error {
	if _, err := time.LoadLocation(zone); err != nil {
		return fmt.Errorf("unknown time zone %q: %w", zone, err)
	}
	c.mu.Lock()
	c.zone = zone
	c.mu.Unlock()
	return nil
}

// ToViewer interprets timeHHmm on dateISO as wall clock in sourceZone and
// returns the same instant in the viewer zone.
func (c *Converter) ToViewer(dateISO, timeHHmm, sourceZone string) (time.Time, error) {
	src, err := time.LoadLocation(sourceZone)
	if err != nil {
		return time.Time{}, fmt.Errorf("load source zone %q: %w", sourceZone, err)
	}
	t, err := time.ParseInLocation(DateLayout+"T"+TimeLayout, dateISO+"T"+timeHHmm, src)
	if err != nil {
		return time.Time{}, fmt.Errorf("parse %q %q: %w", dateISO, timeHHmm, err)
	}
	dst, err := time.LoadLocation(c.Zone())
	if err != nil {
		return time.Time{}, fmt.Errorf("load viewer zone %q: %w", c.Zone(), err)
	}
	return t.In(dst), nil
}

// Convert returns the display (date, time) pair for a source wall-clock
// time, including calendar rollover into the viewer zone. A bad zone or a
// malformed time degrades to the unconverted inputs with a warning; display
// must never fail outright.
func (c *Converter) Convert(dateISO, timeHHmm, sourceZone string) (displayDate, displayTime string) {
	t, err := c.ToViewer(dateISO, timeHHmm, sourceZone)
	if err != nil {
		c.log.Warn().Err(err).
			Str("date", dateISO).
			Str("time", timeHHmm).
			Str("sourceZone", sourceZone).
			Msg("time conversion failed, showing source wall clock")
		return dateISO, timeHHmm
	}
	return t.Format(DateLayout), t.Format(TimeLayout)
}

// FormatTime renders a converted instant as 24-hour "HH:mm".
func FormatTime(t time.Time) string {
	return t.Format(TimeLayout)
}

// FormatDate renders a converted instant as a long-form date.
func FormatDate(t time.Time) string {
	return t.Format(LongDateLayout)
}

// MinutesOfDay parses an "HH:mm" string into minutes since midnight.
func MinutesOfDay(hhmm string) (int, bool) {
	h, m, ok := splitClock(hhmm)
	if !ok {
		return 0, false
	}
	return h*60 + m, true
}

// NextDay returns the ISO date one calendar day after dateISO, or the input
// unchanged if it does not parse.
func NextDay(dateISO string) string {
	d, err := time.Parse(DateLayout, dateISO)
	if err != nil {
		return dateISO
	}
	return d.AddDate(0, 0, 1).Format(DateLayout)
}

func splitClock(hhmm string) (hour, minute int, ok bool) {
	parts := strings.Split(hhmm, ":")
	if len(parts) != 2 {
		return 0, 0, false
	}
	h, err := strconv.Atoi(parts[0])
	if err != nil {
		return 0, 0, false
	}
	m, err := strconv.Atoi(parts[1])
	if err != nil {
		return 0, 0, false
	}
	if h < 0 || h > 23 || m < 0 || m > 59 {
		return 0, 0, false
	}
	return h, m, true
}
