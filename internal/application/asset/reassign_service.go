package asset

import (
	"context"
	"errors"

	"github.com/assettrack/backend/internal/domain/asset"
	"github.com/assettrack/backend/internal/domain/shared"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Reassign runs the per-tag reassignment state machine atomically:
//
//  1. no active record       → revive the latest historical record for the
//     target tenant
//  2. held by the target     → no structural change, audit entry only
//  3. held elsewhere, !force → ConflictError, zero mutation
//  4. held elsewhere, force  → deactivate the holder's record, create a
//     successor for the target, single audit entry
//
// An active record sitting in the unassigned pool is taken in place. The
// actor id is recorded on every audit entry; it is supplied by the
// caller, never derived here.
func (s *Service) Reassign(ctx context.Context, actorID uuid.UUID, rawTag string, params ReassignParams) (*AssetUnitResponse, error) {
	tag, err := asset.NormalizeTag(rawTag)
	if err != nil {
		return nil, err
	}
	if actorID == uuid.Nil {
		return nil, shared.NewDomainError("VALIDATION_FAILED", "Actor id is required for audit attribution")
	}
	if err := s.checkTenant(ctx, params.TargetTenantID); err != nil {
		return nil, err
	}

	var result *AssetUnitResponse
	err = s.scope.Execute(ctx, func(repos TransactionalRepositories) error {
		current, err := repos.AssetRepo().FindActiveByTag(ctx, tag)
		switch {
		case errors.Is(err, shared.ErrNotFound):
			return s.reviveTag(ctx, repos, actorID, tag, params, &result)
		case err != nil:
			return err
		}

		if current.HeldBy(params.TargetTenantID) {
			// every successful reassignment call is logged, including a
			// confirmation of the current holder
			entry := asset.NewHistoryEntry(tag, current.AssignedTenantID, current.AssignedTenantID,
				params.TransferOwnership, params.Reason, actorID)
			if err := repos.HistoryRepo().Append(ctx, entry); err != nil {
				return err
			}
			resp := ToAssetUnitResponse(current)
			result = &resp
			return nil
		}

		if current.AssignedTenantID == nil {
			return s.takeFromPool(ctx, repos, actorID, current, params, &result)
		}

		holder := *current.AssignedTenantID
		if !params.Force {
			return asset.NewConflictError(tag, holder, s.tenantName(ctx, holder))
		}

		if err := current.Deactivate(); err != nil {
			return err
		}
		if err := repos.AssetRepo().SaveWithLock(ctx, current); err != nil {
			return err
		}
		next := current.Successor(params.TargetTenantID, params.TransferOwnership)
		if err := repos.AssetRepo().Create(ctx, next); err != nil {
			if errors.Is(err, shared.ErrAlreadyExists) {
				return shared.ErrConcurrencyConflict
			}
			return err
		}

		target := params.TargetTenantID
		entry := asset.NewHistoryEntry(tag, &holder, &target, params.TransferOwnership, params.Reason, actorID)
		if err := repos.HistoryRepo().Append(ctx, entry); err != nil {
			return err
		}

		resp := ToAssetUnitResponse(next)
		result = &resp
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("asset reassigned",
		zap.String("tag", tag),
		zap.String("target_tenant_id", params.TargetTenantID.String()),
		zap.Bool("force", params.Force),
	)
	return result, nil
}

// reviveTag handles the no-active-record branch: the latest retired
// record becomes the template for a fresh active record under the target
// tenant. A tag the registry has never seen is a plain not-found.
func (s *Service) reviveTag(ctx context.Context, repos TransactionalRepositories, actorID uuid.UUID, tag string, params ReassignParams, result **AssetUnitResponse) error {
	latest, err := repos.AssetRepo().FindLatestByTag(ctx, tag)
	if err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return shared.NewDomainError("NOT_FOUND", "Asset tag not found")
		}
		return err
	}

	next := latest.Successor(params.TargetTenantID, params.TransferOwnership)
	if err := repos.AssetRepo().Create(ctx, next); err != nil {
		if errors.Is(err, shared.ErrAlreadyExists) {
			return shared.ErrConcurrencyConflict
		}
		return err
	}

	target := params.TargetTenantID
	entry := asset.NewHistoryEntry(tag, nil, &target, params.TransferOwnership, params.Reason, actorID)
	if err := repos.HistoryRepo().Append(ctx, entry); err != nil {
		return err
	}

	resp := ToAssetUnitResponse(next)
	*result = &resp
	return nil
}

// takeFromPool assigns an active-but-unassigned unit in place
func (s *Service) takeFromPool(ctx context.Context, repos TransactionalRepositories, actorID uuid.UUID, current *asset.AssetUnit, params ReassignParams, result **AssetUnitResponse) error {
	if err := current.AssignTo(params.TargetTenantID, params.TransferOwnership); err != nil {
		return err
	}
	if err := repos.AssetRepo().SaveWithLock(ctx, current); err != nil {
		return err
	}

	target := params.TargetTenantID
	entry := asset.NewHistoryEntry(current.Tag, nil, &target, params.TransferOwnership, params.Reason, actorID)
	if err := repos.HistoryRepo().Append(ctx, entry); err != nil {
		return err
	}

	resp := ToAssetUnitResponse(current)
	*result = &resp
	return nil
}

// Unassign clears the holder of an active record, returning the unit to
// the admin pool. A tag with no active record is a not-found failure,
// not a silent no-op.
func (s *Service) Unassign(ctx context.Context, actorID uuid.UUID, rawTag string) (*AssetUnitResponse, error) {
	tag, err := asset.NormalizeTag(rawTag)
	if err != nil {
		return nil, err
	}
	if actorID == uuid.Nil {
		return nil, shared.NewDomainError("VALIDATION_FAILED", "Actor id is required for audit attribution")
	}

	var result *AssetUnitResponse
	err = s.scope.Execute(ctx, func(repos TransactionalRepositories) error {
		current, err := repos.AssetRepo().FindActiveByTag(ctx, tag)
		if err != nil {
			return err
		}

		prev := current.AssignedTenantID
		if err := current.Unassign(); err != nil {
			return err
		}
		if err := repos.AssetRepo().SaveWithLock(ctx, current); err != nil {
			return err
		}

		entry := asset.NewHistoryEntry(tag, prev, nil, false, "", actorID)
		if err := repos.HistoryRepo().Append(ctx, entry); err != nil {
			return err
		}

		resp := ToAssetUnitResponse(current)
		result = &resp
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("asset unassigned", zap.String("tag", tag))
	return result, nil
}

// BulkReassign applies one reassignment to every tag in the batch,
// sequentially. A failing tag (conflicts included) is reported in its
// slot and never aborts the remaining tags; the caller drives conflict
// resolution per item.
func (s *Service) BulkReassign(ctx context.Context, actorID uuid.UUID, tags []string, params ReassignParams) []BulkItemResult {
	results := make([]BulkItemResult, 0, len(tags))
	for _, tag := range tags {
		unit, err := s.Reassign(ctx, actorID, tag, params)
		if err != nil {
			s.logger.Warn("bulk reassign item failed", zap.String("tag", tag), zap.Error(err))
		}
		results = append(results, BulkItemResult{Tag: tag, Unit: unit, Err: err})
	}
	return results
}

// BulkUnassign applies unassignment to every tag in the batch with the
// same per-item isolation as BulkReassign
func (s *Service) BulkUnassign(ctx context.Context, actorID uuid.UUID, tags []string) []BulkItemResult {
	results := make([]BulkItemResult, 0, len(tags))
	for _, tag := range tags {
		unit, err := s.Unassign(ctx, actorID, tag)
		if err != nil {
			s.logger.Warn("bulk unassign item failed", zap.String("tag", tag), zap.Error(err))
		}
		results = append(results, BulkItemResult{Tag: tag, Unit: unit, Err: err})
	}
	return results
}
