package asset

import (
	"context"
	"errors"
	"fmt"

	"github.com/assettrack/backend/internal/domain/asset"
	"github.com/assettrack/backend/internal/domain/catalog"
	"github.com/assettrack/backend/internal/domain/identity"
	"github.com/assettrack/backend/internal/domain/shared"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

const (
	// DefaultHistoryLimit caps history queries when the caller passes none
	DefaultHistoryLimit = 50
	// MaxHistoryLimit is the hard ceiling for a single history query
	MaxHistoryLimit = 500
)

// Service orchestrates registry reads, the reassignment state machine and
// the audit trail. All per-tag mutations go through the transaction scope.
type Service struct {
	assets  asset.Repository
	history asset.HistoryRepository
	tenants identity.TenantDirectory
	models  catalog.ModelCatalog
	scope   TransactionScope
	scanner *asset.TokenScanner
	logger  *zap.Logger
}

// NewService creates a new asset service
func NewService(
	assets asset.Repository,
	history asset.HistoryRepository,
	tenants identity.TenantDirectory,
	models catalog.ModelCatalog,
	scope TransactionScope,
	logger *zap.Logger,
) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{
		assets:  assets,
		history: history,
		tenants: tenants,
		models:  models,
		scope:   scope,
		scanner: asset.NewTokenScanner(assets),
		logger:  logger,
	}
}

// List returns a filtered, paginated view over the registry. A page past
// the end yields zero items with the correct totals, never an error.
func (s *Service) List(ctx context.Context, params ListParams) (shared.Paginated[AssetUnitResponse], error) {
	var empty shared.Paginated[AssetUnitResponse]

	filter, err := buildFilter(params)
	if err != nil {
		return empty, err
	}

	total, err := s.assets.Count(ctx, filter)
	if err != nil {
		return empty, err
	}

	units, err := s.assets.FindAll(ctx, filter)
	if err != nil {
		return empty, err
	}

	items := make([]AssetUnitResponse, 0, len(units))
	for i := range units {
		items = append(items, ToAssetUnitResponse(&units[i]))
	}
	return shared.NewPaginated(items, total, filter.Page, filter.Limit()), nil
}

// GetByTag returns the current active record for a tag
func (s *Service) GetByTag(ctx context.Context, rawTag string) (*AssetUnitResponse, error) {
	tag, err := asset.NormalizeTag(rawTag)
	if err != nil {
		return nil, err
	}
	unit, err := s.assets.FindActiveByTag(ctx, tag)
	if err != nil {
		return nil, err
	}
	resp := ToAssetUnitResponse(unit)
	return &resp, nil
}

// Create registers a new active unit. The model reference and tenant are
// validated against the external catalogs before the registry is touched;
// an existing active record for the tag is a conflict.
func (s *Service) Create(ctx context.Context, params CreateAssetParams) (*AssetUnitResponse, error) {
	assigned := params.AssignedTenantID
	if assigned == nil {
		// administrative creation assigns the unit to its owner
		owner := params.TenantID
		assigned = &owner
	}

	unit, err := asset.NewAssetUnit(asset.NewAssetUnitParams{
		Tag:              params.Tag,
		ModelID:          params.ModelID,
		OwnerTenantID:    params.TenantID,
		AssignedTenantID: assigned,
		Name:             params.Name,
		Lot:              params.Lot,
		Status:           params.Status,
		SubStatus:        params.SubStatus,
		Category:         params.Category,
		RentalFlag:       params.RentalFlag,
		ExpiresAt:        params.ExpiresAt,
	})
	if err != nil {
		return nil, err
	}

	if err := s.checkTenant(ctx, params.TenantID); err != nil {
		return nil, err
	}
	if *assigned != params.TenantID {
		if err := s.checkTenant(ctx, *assigned); err != nil {
			return nil, err
		}
	}
	if _, err := s.models.FindByID(ctx, params.ModelID); err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return nil, shared.NewDomainError("NOT_FOUND", "Model reference not found")
		}
		return nil, upstream("model catalog lookup failed", err)
	}

	var result *AssetUnitResponse
	err = s.scope.Execute(ctx, func(repos TransactionalRepositories) error {
		existing, err := repos.AssetRepo().FindActiveByTag(ctx, unit.Tag)
		switch {
		case err == nil:
			holder := uuid.Nil
			if existing.AssignedTenantID != nil {
				holder = *existing.AssignedTenantID
			}
			return asset.NewConflictError(unit.Tag, holder, s.tenantName(ctx, holder))
		case errors.Is(err, shared.ErrNotFound):
			// tag is free
		default:
			return err
		}

		if err := repos.AssetRepo().Create(ctx, unit); err != nil {
			if errors.Is(err, shared.ErrAlreadyExists) {
				// lost the race to the partial unique index
				return shared.ErrConcurrencyConflict
			}
			return err
		}
		resp := ToAssetUnitResponse(unit)
		result = &resp
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("asset unit created",
		zap.String("tag", unit.Tag),
		zap.String("owner_tenant_id", unit.OwnerTenantID.String()),
	)
	return result, nil
}

// History returns up to limit audit entries for a tag, newest first
func (s *Service) History(ctx context.Context, rawTag string, limit int) ([]HistoryEntryResponse, error) {
	tag, err := asset.NormalizeTag(rawTag)
	if err != nil {
		return nil, err
	}
	if limit <= 0 {
		limit = DefaultHistoryLimit
	}
	if limit > MaxHistoryLimit {
		limit = MaxHistoryLimit
	}

	entries, err := s.history.FindByTag(ctx, tag, limit)
	if err != nil {
		return nil, err
	}
	result := make([]HistoryEntryResponse, 0, len(entries))
	for i := range entries {
		result = append(result, ToHistoryEntryResponse(&entries[i]))
	}
	return result, nil
}

// Scan feeds one input increment through the tag token scanner and
// returns the advanced state
func (s *Service) Scan(ctx context.Context, state asset.ScanState, input string) (asset.ScanState, error) {
	return s.scanner.Feed(ctx, state, input)
}

// checkTenant validates a tenant id against the directory
func (s *Service) checkTenant(ctx context.Context, id uuid.UUID) error {
	if id == uuid.Nil {
		return shared.NewDomainError("VALIDATION_FAILED", "Tenant id cannot be empty")
	}
	if _, err := s.tenants.FindByID(ctx, id); err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return shared.NewDomainError("NOT_FOUND", "Tenant not found")
		}
		return upstream("tenant directory lookup failed", err)
	}
	return nil
}

// tenantName resolves a tenant name for conflict enrichment; a directory
// failure degrades to an empty name rather than failing the operation
func (s *Service) tenantName(ctx context.Context, id uuid.UUID) string {
	if id == uuid.Nil {
		return ""
	}
	tenant, err := s.tenants.FindByID(ctx, id)
	if err != nil {
		s.logger.Warn("tenant name lookup failed", zap.String("tenant_id", id.String()), zap.Error(err))
		return ""
	}
	return tenant.Name
}

func upstream(msg string, err error) error {
	if errors.Is(err, shared.ErrUpstream) {
		return err
	}
	return fmt.Errorf("%w: %s: %v", shared.ErrUpstream, msg, err)
}
