package model

import "errors"

// Config contains validated pomodoro settings. Durations are stored in
// minutes as the user configures them; the second-count helpers feed the
// countdown tracks.
type Config struct {
	WorkDurationMin       uint32
	ShortBreakDurationMin uint32
	LongBreakDurationMin  uint32
	SessionsUntilLong     uint32

	EnableNotifications bool
	AutoStartBreaks     bool
	AutoStartWork       bool
}

// DefaultConfig returns the classic pomodoro defaults.
func DefaultConfig() Config {
	return Config{
		WorkDurationMin:       25,
		ShortBreakDurationMin: 5,
		LongBreakDurationMin:  15,
		SessionsUntilLong:     4,
		EnableNotifications:   true,
		AutoStartBreaks:       false,
		AutoStartWork:         false,
	}
}

// Validate rejects configurations the timer cannot run with.
func (config Config) Validate() error {
	if config.WorkDurationMin == 0 {
		return errors.New("work duration must be greater than 0")
	}
	if config.ShortBreakDurationMin == 0 {
		return errors.New("short break duration must be greater than 0")
	}
	if config.LongBreakDurationMin == 0 {
		return errors.New("long break duration must be greater than 0")
	}
	if config.SessionsUntilLong == 0 {
		return errors.New("sessions until long break must be greater than 0")
	}
	return nil
}

// WorkDurationSecs returns the work interval length in seconds.
func (config Config) WorkDurationSecs() uint32 {
	return config.WorkDurationMin * 60
}

// ShortBreakDurationSecs returns the short break length in seconds.
func (config Config) ShortBreakDurationSecs() uint32 {
	return config.ShortBreakDurationMin * 60
}

// LongBreakDurationSecs returns the long break length in seconds.
func (config Config) LongBreakDurationSecs() uint32 {
	return config.LongBreakDurationMin * 60
}
