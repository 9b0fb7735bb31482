package profile

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"golang.org/x/exp/slog"

	"folio/internal/render"
)

const storeKey = "profile"

var ErrEmptyField = errors.New("profile field required")

// KV is the flat key-value surface the profile document lives in.
type KV interface {
	Read(key string) ([]byte, error)
	Write(key string, data []byte) error
	Has(key string) bool
}

// Profile holds the site's editable sections: the hero introduction,
// the about text and the CV.
type Profile struct {
	Name      string    `json:"name"`
	Tagline   string    `json:"tagline"`
	About     string    `json:"about"`
	CV        string    `json:"cv"`
	CVFile    string    `json:"cv_file,omitempty"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Service persists the profile document as a single JSON value.
type Service struct {
	kv  KV
	log *slog.Logger
	now func() time.Time
}

func NewService(kv KV, log *slog.Logger) *Service {
	return &Service{
		kv:  kv,
		log: log.With("component", "profile_service"),
		now: time.Now,
	}
}

// Get loads the profile. A missing document is an empty profile.
func (s *Service) Get() (Profile, error) {
	if !s.kv.Has(storeKey) {
		return Profile{}, nil
	}
	data, err := s.kv.Read(storeKey)
	if err != nil {
		return Profile{}, fmt.Errorf("read profile: %w", err)
	}
	var p Profile
	if err := json.Unmarshal(data, &p); err != nil {
		return Profile{}, fmt.Errorf("parse profile: %w", err)
	}
	return p, nil
}

// SetIntro updates the hero name and tagline.
func (s *Service) SetIntro(name, tagline string) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return fmt.Errorf("%w: name", ErrEmptyField)
	}
	return s.update(func(p *Profile) {
		p.Name = name
		p.Tagline = strings.TrimSpace(tagline)
	})
}

// SetAbout replaces the about text.
func (s *Service) SetAbout(text string) error {
	text = strings.TrimSpace(text)
	if text == "" {
		return fmt.Errorf("%w: about text", ErrEmptyField)
	}
	return s.update(func(p *Profile) {
		p.About = text
	})
}

// SetCV replaces the CV text.
func (s *Service) SetCV(text string) error {
	text = strings.TrimSpace(text)
	if text == "" {
		return fmt.Errorf("%w: cv text", ErrEmptyField)
	}
	return s.update(func(p *Profile) {
		p.CV = text
	})
}

// AttachCV records the name of an uploaded CV file.
func (s *Service) AttachCV(filename string) error {
	filename = strings.TrimSpace(filename)
	if filename == "" {
		return fmt.Errorf("%w: file name", ErrEmptyField)
	}
	return s.update(func(p *Profile) {
		p.CVFile = filename
	})
}

func (s *Service) update(apply func(*Profile)) error {
	p, err := s.Get()
	if err != nil {
		return err
	}
	apply(&p)
	p.UpdatedAt = s.now()

	data, err := json.Marshal(p)
	if err != nil {
		return fmt.Errorf("marshal profile: %w", err)
	}
	if err := s.kv.Write(storeKey, data); err != nil {
		return fmt.Errorf("save profile: %w", err)
	}
	s.log.Info("profile updated")
	return nil
}

// RenderAbout returns the escaped about fragment.
func (s *Service) RenderAbout() (string, error) {
	p, err := s.Get()
	if err != nil {
		return "", err
	}
	if p.About == "" {
		return "", nil
	}
	return render.AboutFragment(p.About), nil
}

// RenderCV returns the escaped CV fragment with line breaks preserved.
func (s *Service) RenderCV() (string, error) {
	p, err := s.Get()
	if err != nil {
		return "", err
	}
	if p.CV == "" {
		return "", nil
	}
	return render.CVFragment(p.CV), nil
}
