package quick_roll

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/PedroPerillo/dndice/internal/metrics"
	"github.com/PedroPerillo/dndice/internal/models"
	quickRollRepo "github.com/PedroPerillo/dndice/internal/repositories/quick_roll"
	"github.com/go-playground/validator/v10"
)

const localStoreName = "local"

// validatedDraft is the normalized draft as it is checked before storage
type validatedDraft struct {
	Name     string `validate:"max=30"`
	Count    int    `validate:"min=1,max=20"`
	DieSize  int    `validate:"oneof=4 6 8 10 12 20 100"`
	Modifier int    `validate:"min=-50,max=50"`
}

// service implements the Service interface
type service struct {
	remote     quickRollRepo.Repository
	remoteName string
	logger     *slog.Logger
	validate   *validator.Validate
}

// New creates a new quick roll service
func New(cfg *Config) (*service, error) {
	if cfg == nil {
		return nil, ErrNilConfig
	}

	remoteName := cfg.RemoteName
	if remoteName == "" {
		remoteName = "remote"
	}

	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}

	return &service{
		remote:     cfg.Remote,
		remoteName: remoteName,
		logger:     logger.With("component", "quick_roll_service"),
		validate:   validator.New(validator.WithRequiredStructEnabled()),
	}, nil
}

// target is the store and owner an operation resolved to
type target struct {
	repo    quickRollRepo.Repository
	ownerID string
	store   string
}

// resolve picks the remote store for signed-in callers and the caller's
// local store otherwise
func (s *service) resolve(scope Scope) (*target, error) {
	if scope.Identity != nil {
		if scope.Identity.ID == "" {
			return nil, ErrNotAuthenticated
		}
		if s.remote == nil {
			return nil, fmt.Errorf("%w: remote store not configured", ErrStoreUnavailable)
		}
		return &target{repo: s.remote, ownerID: scope.Identity.ID, store: s.remoteName}, nil
	}

	if scope.Local == nil {
		return nil, ErrNotAuthenticated
	}

	return &target{repo: scope.Local, ownerID: models.LocalOwnerID, store: localStoreName}, nil
}

// normalize clamps count and modifier and tidies the name, then checks the die size
func (s *service) normalize(d Draft) (*validatedDraft, error) {
	draft := &validatedDraft{
		Name:     models.NormalizeName(d.Name),
		Count:    models.ClampCount(d.Count),
		DieSize:  d.DieSize,
		Modifier: models.ClampModifier(d.Modifier),
	}

	if err := s.validate.Struct(draft); err != nil {
		var fieldErrs validator.ValidationErrors
		if errors.As(err, &fieldErrs) && len(fieldErrs) > 0 {
			fe := fieldErrs[0]
			if fe.Field() == "DieSize" {
				return nil, fmt.Errorf("%w: d%d is not a supported die", ErrValidation, d.DieSize)
			}
			return nil, fmt.Errorf("%w: %s failed %s", ErrValidation, fe.Field(), fe.Tag())
		}
		return nil, fmt.Errorf("%w: %w", ErrValidation, err)
	}

	return draft, nil
}

// storeError maps a repository failure onto the service taxonomy
func (s *service) storeError(ctx context.Context, t *target, op string, err error) error {
	metrics.QuickRollOperations.WithLabelValues(t.store, op, metrics.ResultError).Inc()

	if errors.Is(err, quickRollRepo.ErrQuickRollNotFound) {
		return ErrQuickRollNotFound
	}

	s.logger.ErrorContext(ctx, "quick roll store call failed",
		"operation", op,
		"store", t.store,
		"error", err,
	)

	return fmt.Errorf("%w: %w", ErrStoreUnavailable, err)
}

func (s *service) ok(t *target, op string) {
	metrics.QuickRollOperations.WithLabelValues(t.store, op, metrics.ResultOK).Inc()
}

// ListQuickRolls returns the scope's presets, newest first
func (s *service) ListQuickRolls(ctx context.Context, input *ListQuickRollsInput) (*ListQuickRollsOutput, error) {
	if input == nil {
		return nil, ErrNilInput
	}

	t, err := s.resolve(input.Scope)
	if err != nil {
		return nil, err
	}

	out, err := t.repo.ListQuickRolls(ctx, &quickRollRepo.ListQuickRollsInput{
		OwnerID: t.ownerID,
	})
	if err != nil {
		return nil, s.storeError(ctx, t, "list", err)
	}
	s.ok(t, "list")

	quickRolls := out.QuickRolls
	if quickRolls == nil {
		quickRolls = []*models.QuickRoll{}
	}

	return &ListQuickRollsOutput{
		QuickRolls: quickRolls,
	}, nil
}

// CreateQuickRoll stores a new preset after clamping and validation
func (s *service) CreateQuickRoll(ctx context.Context, input *CreateQuickRollInput) (*CreateQuickRollOutput, error) {
	if input == nil {
		return nil, ErrNilInput
	}

	t, err := s.resolve(input.Scope)
	if err != nil {
		return nil, err
	}

	draft, err := s.normalize(input.Draft)
	if err != nil {
		return nil, err
	}

	created, err := t.repo.CreateQuickRoll(ctx, &quickRollRepo.CreateQuickRollInput{
		QuickRoll: &models.QuickRoll{
			OwnerID:  t.ownerID,
			Name:     draft.Name,
			Count:    draft.Count,
			DieSize:  draft.DieSize,
			Modifier: draft.Modifier,
		},
	})
	if err != nil {
		return nil, s.storeError(ctx, t, "create", err)
	}
	s.ok(t, "create")

	s.logger.DebugContext(ctx, "quick roll created",
		"store", t.store,
		"quick_roll_id", created.ID,
		"label", created.Label(),
	)

	return &CreateQuickRollOutput{
		QuickRoll: created,
	}, nil
}

// GetQuickRoll retrieves one of the scope's presets
func (s *service) GetQuickRoll(ctx context.Context, input *GetQuickRollInput) (*GetQuickRollOutput, error) {
	if input == nil {
		return nil, ErrNilInput
	}

	if input.ID == "" {
		return nil, ErrQuickRollNotFound
	}

	t, err := s.resolve(input.Scope)
	if err != nil {
		return nil, err
	}

	q, err := t.repo.GetQuickRoll(ctx, &quickRollRepo.GetQuickRollInput{
		OwnerID: t.ownerID,
		ID:      input.ID,
	})
	if err != nil {
		return nil, s.storeError(ctx, t, "get", err)
	}
	s.ok(t, "get")

	return &GetQuickRollOutput{
		QuickRoll: q,
	}, nil
}

// UpdateQuickRoll replaces a preset's fields with the same rules as creation
func (s *service) UpdateQuickRoll(ctx context.Context, input *UpdateQuickRollInput) (*UpdateQuickRollOutput, error) {
	if input == nil {
		return nil, ErrNilInput
	}

	if input.ID == "" {
		return nil, ErrQuickRollNotFound
	}

	t, err := s.resolve(input.Scope)
	if err != nil {
		return nil, err
	}

	draft, err := s.normalize(input.Draft)
	if err != nil {
		return nil, err
	}

	updated, err := t.repo.UpdateQuickRoll(ctx, &quickRollRepo.UpdateQuickRollInput{
		QuickRoll: &models.QuickRoll{
			ID:       input.ID,
			OwnerID:  t.ownerID,
			Name:     draft.Name,
			Count:    draft.Count,
			DieSize:  draft.DieSize,
			Modifier: draft.Modifier,
		},
	})
	if err != nil {
		return nil, s.storeError(ctx, t, "update", err)
	}
	s.ok(t, "update")

	return &UpdateQuickRollOutput{
		QuickRoll: updated,
	}, nil
}

// DeleteQuickRoll removes one of the scope's presets
func (s *service) DeleteQuickRoll(ctx context.Context, input *DeleteQuickRollInput) error {
	if input == nil {
		return ErrNilInput
	}

	// Nothing can be stored under an empty id
	if input.ID == "" {
		return nil
	}

	t, err := s.resolve(input.Scope)
	if err != nil {
		return err
	}

	if err := t.repo.DeleteQuickRoll(ctx, &quickRollRepo.DeleteQuickRollInput{
		OwnerID: t.ownerID,
		ID:      input.ID,
	}); err != nil {
		return s.storeError(ctx, t, "delete", err)
	}
	s.ok(t, "delete")

	return nil
}
