package service

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"strings"

	"squad-builder/internal/constants"
	"squad-builder/internal/domain"
	"squad-builder/internal/scoring"

	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"
)

type PlayerStore interface {
	List(ctx context.Context) ([]domain.Player, error)
	GetByNickname(ctx context.Context, nickname string) (*domain.Player, error)
	Create(ctx context.Context, player *domain.Player) (*domain.Player, error)
}

type CaptchaVerifier interface {
	Verify(ctx context.Context, token string) error
}

// PlayerInput is a player candidate as submitted by the add-player form.
type PlayerInput struct {
	Nickname           string            `validate:"required,min=2,max=15,nickname"`
	Region             domain.Region     `validate:"required,oneof=EU NA SA ASIA OCE"`
	Level              int               `validate:"min=1,max=10"`
	Rating             int               `validate:"min=0,max=5000"`
	KD                 float64           `validate:"min=0,max=5"`
	HeadshotPercentage int               `validate:"min=0,max=100"`
	WinRate            int               `validate:"min=0,max=100"`
	PreferredRole      domain.Role       `validate:"required,oneof=IGL Entry Support AWP Lurker"`
	Aggressiveness     int               `validate:"min=0,max=100"`
	Experience         domain.Experience `validate:"required,oneof=Online LAN Pro Veteran"`
}

type PlayerProfile struct {
	domain.Player
	PerformanceScore int
}

var nicknamePattern = regexp.MustCompile(`^[a-zA-Z0-9_-]+$`)

// NewValidator returns a validator that knows the nickname tag and the
// level 10 rating floor.
func NewValidator() *validator.Validate {
	v := validator.New()
	_ = v.RegisterValidation("nickname", func(fl validator.FieldLevel) bool {
		return nicknamePattern.MatchString(fl.Field().String())
	})
	v.RegisterStructValidation(func(sl validator.StructLevel) {
		in := sl.Current().Interface().(PlayerInput)
		if in.Level == 10 && in.Rating < domain.MinTopLevelRating {
			sl.ReportError(in.Rating, "Rating", "Rating", "toplevel", "")
		}
	}, PlayerInput{})
	return v
}

type PlayerService struct {
	store    PlayerStore
	captcha  CaptchaVerifier
	validate *validator.Validate
	logger   zerolog.Logger
}

func NewPlayerService(store PlayerStore, captcha CaptchaVerifier, validate *validator.Validate, logger zerolog.Logger) *PlayerService {
	return &PlayerService{store: store, captcha: captcha, validate: validate, logger: logger}
}

// ListPlayers returns the player pool, highest rating first, each with its
// performance score.
func (s *PlayerService) ListPlayers(ctx context.Context) ([]PlayerProfile, error) {
	ctx, cancel := context.WithTimeout(ctx, constants.DatabaseTimeout)
	defer cancel()

	players, err := s.store.List(ctx)
	if err != nil {
		s.logger.Error().Err(err).Msg("failed to list players")
		return nil, fmt.Errorf("failed to list players: %w", err)
	}

	profiles := make([]PlayerProfile, len(players))
	for i, p := range players {
		profiles[i] = PlayerProfile{Player: p, PerformanceScore: scoring.PerformanceScore(p.Stats())}
	}

	s.logger.Debug().Int("count", len(profiles)).Msg("players listed")
	return profiles, nil
}

// CreatePlayer validates the candidate, checks the captcha token and the
// nickname concurrently, then stores the player.
func (s *PlayerService) CreatePlayer(ctx context.Context, in PlayerInput, captchaToken string) (*domain.Player, error) {
	ctx, cancel := context.WithTimeout(ctx, constants.RequestTimeout)
	defer cancel()

	in.Nickname = strings.TrimSpace(in.Nickname)
	if err := s.validate.Struct(in); err != nil {
		s.logger.Debug().Err(err).Str("nickname", in.Nickname).Msg("player input rejected")
		return nil, validationError(err)
	}
	if captchaToken == "" {
		return nil, domain.ErrCaptchaRequired
	}

	g, gCtx := errgroup.WithContext(ctx)
	g.Go(func() error {
		apiCtx, apiCancel := context.WithTimeout(gCtx, constants.ExternalAPITimeout)
		defer apiCancel()
		return s.captcha.Verify(apiCtx, captchaToken)
	})
	g.Go(func() error {
		_, err := s.store.GetByNickname(gCtx, in.Nickname)
		if err == nil {
			return fmt.Errorf("%w: %s", domain.ErrDuplicateNickname, in.Nickname)
		}
		if errors.Is(err, domain.ErrPlayerNotFound) {
			return nil
		}
		return err
	})
	if err := g.Wait(); err != nil {
		s.logger.Warn().Err(err).Str("nickname", in.Nickname).Msg("player creation rejected")
		return nil, err
	}

	player, err := s.store.Create(ctx, &domain.Player{
		Nickname:           in.Nickname,
		Region:             in.Region,
		Level:              in.Level,
		Rating:             in.Rating,
		KD:                 in.KD,
		HeadshotPercentage: in.HeadshotPercentage,
		WinRate:            in.WinRate,
		PreferredRole:      in.PreferredRole,
		Aggressiveness:     in.Aggressiveness,
		Experience:         in.Experience,
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info().Int64("id", player.ID).Str("nickname", player.Nickname).Msg("player created")
	return player, nil
}

func validationError(err error) error {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return fmt.Errorf("%w: %v", domain.ErrValidation, err)
	}
	msgs := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		msgs = append(msgs, fieldMessage(fe))
	}
	return fmt.Errorf("%w: %s", domain.ErrValidation, strings.Join(msgs, "; "))
}

func fieldMessage(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return fmt.Sprintf("%s is required", fe.Field())
	case "min":
		return fmt.Sprintf("%s must be at least %s", fe.Field(), fe.Param())
	case "max":
		return fmt.Sprintf("%s must be at most %s", fe.Field(), fe.Param())
	case "oneof":
		return fmt.Sprintf("%s must be one of: %s", fe.Field(), fe.Param())
	case "nickname":
		return "Nickname can only contain letters, numbers, underscores, and dashes"
	case "toplevel":
		return fmt.Sprintf("Rating must be at least %d for level 10", domain.MinTopLevelRating)
	default:
		return fmt.Sprintf("%s is invalid", fe.Field())
	}
}
