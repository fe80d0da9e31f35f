// Package admin implements the privileged operations: manual role changes,
// bans, recruit registration and channel seeding. Every operation re-checks
// the caller's rank against the stored records; nothing trusts the client.
package admin

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/tigerroots/collective/internal/common"
	"github.com/tigerroots/collective/internal/dbx"
	"github.com/tigerroots/collective/internal/logging"
	"github.com/tigerroots/collective/internal/roles"
	"github.com/tigerroots/collective/internal/server/models"
	"github.com/tigerroots/collective/internal/server/repositories/repomanager"
)

// CredentialDisabler turns off a user's sign-in credential. The identity
// provider implements it.
type CredentialDisabler interface {
	Disable(ctx context.Context, uid string) error
}

// PromotionEvaluator re-runs the automatic promotion check for one user.
type PromotionEvaluator interface {
	PromoteIfEligible(ctx context.Context, uid string) error
}

type Service struct {
	db        *sql.DB
	rm        repomanager.RepositoryManager
	disabler  CredentialDisabler
	promotion PromotionEvaluator
	logger    logging.Logger
}

func NewService(db *sql.DB, rm repomanager.RepositoryManager, disabler CredentialDisabler,
	promotion PromotionEvaluator, logger logging.Logger) *Service {
	return &Service{
		db:        db,
		rm:        rm,
		disabler:  disabler,
		promotion: promotion,
		logger:    logger.With("module", "admin"),
	}
}

// UpdateUserRole assigns newRole to the target. The caller must outrank the
// target, and must either outrank the new role as well or hold the top role.
func (s *Service) UpdateUserRole(ctx context.Context, callerID, targetID string, newRole roles.Role) (string, error) {
	if callerID == "" {
		return "", common.ErrUnauthenticated
	}
	if !roles.Valid(newRole) {
		return "", fmt.Errorf("%w: unknown role %q", common.ErrInvalidArgument, newRole)
	}

	repo := s.rm.Users(s.db)

	caller, err := repo.Get(ctx, callerID)
	if err != nil {
		return "", fmt.Errorf("%w: caller %s", common.ErrNotFound, callerID)
	}
	target, err := repo.Get(ctx, targetID)
	if err != nil {
		return "", fmt.Errorf("%w: target user %s", common.ErrNotFound, targetID)
	}

	if !roles.Higher(caller.Role, target.Role) {
		return "", fmt.Errorf("%w: caller does not outrank target", common.ErrPermissionDenied)
	}
	if caller.Role != roles.CEO && !roles.Higher(caller.Role, newRole) {
		return "", fmt.Errorf("%w: caller cannot grant a role at or above their own", common.ErrPermissionDenied)
	}

	if err := repo.SetRole(ctx, targetID, newRole); err != nil {
		return "", err
	}

	s.logger.Info(ctx, "role updated", "caller", callerID, "target", targetID, "role", newRole)
	return "role-updated", nil
}

// BanUser sets the target's role to banned and disables their credential.
// Only board members and the CEO may ban, and only targets they outrank.
// The role write commits first; a credential-disable failure is surfaced so
// the operator retries the ban, which is idempotent on the role side.
func (s *Service) BanUser(ctx context.Context, callerID, targetID string) (string, error) {
	if callerID == "" {
		return "", common.ErrUnauthenticated
	}

	repo := s.rm.Users(s.db)

	caller, err := repo.Get(ctx, callerID)
	if err != nil {
		return "", fmt.Errorf("%w: caller has no record", common.ErrPermissionDenied)
	}
	if caller.Role != roles.Board && caller.Role != roles.CEO {
		return "", fmt.Errorf("%w: banning requires board or ceo", common.ErrPermissionDenied)
	}

	target, err := repo.Get(ctx, targetID)
	if err != nil {
		return "", fmt.Errorf("%w: target user %s", common.ErrNotFound, targetID)
	}
	if !roles.Higher(caller.Role, target.Role) {
		return "", fmt.Errorf("%w: caller does not outrank target", common.ErrPermissionDenied)
	}

	if err := repo.SetRole(ctx, targetID, roles.Banned); err != nil {
		return "", err
	}

	if err := s.disabler.Disable(ctx, targetID); err != nil {
		return "", fmt.Errorf("role set to banned but disabling credential failed: %w", err)
	}

	s.logger.Info(ctx, "user banned", "caller", callerID, "target", targetID)
	return "banned", nil
}

// RegisterRecruit records that the caller was brought in by recruiterID. The
// caller's record is upserted with zeroed counters, the recruiter's direct
// count goes up by one, and the recruiter is re-checked for promotion.
func (s *Service) RegisterRecruit(ctx context.Context, callerID, recruiterID string) (string, error) {
	if callerID == "" {
		return "", common.ErrUnauthenticated
	}
	if recruiterID == "" {
		return "", fmt.Errorf("%w: recruiter id required", common.ErrInvalidArgument)
	}
	if callerID == recruiterID {
		return "", fmt.Errorf("%w: self-recruitment", common.ErrInvalidArgument)
	}

	err := dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		repo := s.rm.Users(tx)

		existing, err := repo.Get(ctx, callerID)
		if err == nil && existing.RecruiterID != "" {
			return fmt.Errorf("%w: recruiter already recorded", common.ErrAlreadyExists)
		}

		if _, err := repo.Get(ctx, recruiterID); err != nil {
			return fmt.Errorf("%w: recruiter %s", common.ErrNotFound, recruiterID)
		}

		if err := repo.CreateRecruit(ctx, callerID, recruiterID); err != nil {
			return err
		}
		return repo.IncrementRecruits(ctx, recruiterID)
	})
	if err != nil {
		return "", err
	}

	if err := s.promotion.PromoteIfEligible(ctx, recruiterID); err != nil {
		return "", err
	}

	s.logger.Info(ctx, "recruit registered", "recruit", callerID, "recruiter", recruiterID)
	return "ok", nil
}

const rankInfoContent = "Roles:\n" +
	"• Intern – 1 tree + 1 recruit\n" +
	"• Volunteer\n" +
	"• Senior Volunteer\n" +
	"• Coordinator\n" +
	"• Board of Directors\n" +
	"• CEO"

// SeedChannels is the fixed channel set created on demand. Existing channels
// are never overwritten.
var SeedChannels = []models.Channel{
	{ID: "tree-planting-and-care", Name: "tree-planting-and-care", Type: models.ChannelText},
	{ID: "recruitment", Name: "recruitment", Type: models.ChannelText},
	{ID: "rank-info", Name: "rank-info", Type: models.ChannelAnnounce, Content: rankInfoContent},
	{ID: "tree-stats", Name: "tree-stats", Type: models.ChannelAnnounce, Content: "Loading stats…"},
}

// EnsureChannels creates any missing seed channels. Idempotent.
func (s *Service) EnsureChannels(ctx context.Context) (string, error) {
	repo := s.rm.Channels(s.db)
	for i := range SeedChannels {
		ch := SeedChannels[i]
		if err := repo.Ensure(ctx, &ch); err != nil {
			return "", fmt.Errorf("ensuring channel %s: %w", ch.ID, err)
		}
	}
	return "ok", nil
}
