package hub

import (
	"errors"
	"fmt"
	"log/slog"

	"github.com/sadopc/focusboard/internal/store"
)

// SettingsRepo stores the pomodoro settings as a single value.
type SettingsRepo struct {
	kv    store.KV
	log   *slog.Logger
	value Settings
}

func (s *SettingsRepo) load() {
	s.value = DefaultSettings()

	data, err := s.kv.Get(store.KeySettings)
	if errors.Is(err, store.ErrNotFound) {
		return
	}
	if err != nil {
		s.log.Warn("read settings failed, using defaults", slog.Any("error", err))
		return
	}
	v, err := store.DecodeValue[Settings](data)
	if err != nil {
		s.log.Warn("malformed settings, using defaults", slog.Any("error", err))
		return
	}
	if v.validate() != nil {
		s.log.Warn("stored settings out of range, using defaults")
		return
	}
	s.value = v
}

func (s *SettingsRepo) Get() Settings {
	return s.value
}

func (s *SettingsRepo) Set(v Settings) error {
	if err := v.validate(); err != nil {
		return err
	}
	data, err := store.EncodeValue(v)
	if err != nil {
		return err
	}
	s.value = v
	if err := s.kv.Put(store.KeySettings, data); err != nil {
		return fmt.Errorf("save settings: %w", err)
	}
	return nil
}

func (v Settings) validate() error {
	if v.WorkMinutes <= 0 || v.BreakMinutes <= 0 || v.LongBreakMinutes <= 0 || v.SessionsBeforeLongBreak <= 0 {
		return ErrInvalidSettings
	}
	return nil
}
