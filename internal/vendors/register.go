package vendors

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/sosmarketplace/sos-board/internal/items"
	"github.com/sosmarketplace/sos-board/pkg/db"
	"github.com/sosmarketplace/sos-board/pkg/db/models"
	pkgerrors "github.com/sosmarketplace/sos-board/pkg/errors"
	"github.com/sosmarketplace/sos-board/pkg/logger"
	"gorm.io/gorm"
)

type txRunner interface {
	WithTx(ctx context.Context, fn func(tx *gorm.DB) error) error
}

// RegisterService onboards a vendor and its optional first item.
type RegisterService interface {
	Register(ctx context.Context, input RegisterInput) (*RegisterResult, error)
}

// RegisterServiceParams packages the dependencies for the registration flow.
type RegisterServiceParams struct {
	TX      txRunner
	Vendors Repository
	Items   items.Repository
	Logger  *logger.Logger
	// Now stamps seed item identifiers; defaults to time.Now.
	Now func() time.Time
}

type registerService struct {
	tx      txRunner
	vendors Repository
	items   items.Repository
	logg    *logger.Logger
	now     func() time.Time
}

// NewRegisterService builds a registration service with the provided dependencies.
func NewRegisterService(params RegisterServiceParams) (RegisterService, error) {
	if params.TX == nil {
		return nil, pkgerrors.New(pkgerrors.CodeInternal, "transaction runner required")
	}
	if params.Vendors == nil || params.Items == nil {
		return nil, pkgerrors.New(pkgerrors.CodeInternal, "vendor and item repositories required")
	}
	now := params.Now
	if now == nil {
		now = time.Now
	}
	return &registerService{
		tx:      params.TX,
		vendors: params.Vendors,
		items:   params.Items,
		logg:    params.Logger,
		now:     now,
	}, nil
}

// Register derives the vendor key, refuses keys already taken and inserts the
// vendor and its seed item in one transaction. A concurrent registration that
// slips past the lookup is caught by the unique index on vendors.key and
// reported as the same duplicate key error.
func (s *registerService) Register(ctx context.Context, input RegisterInput) (*RegisterResult, error) {
	fullName := strings.TrimSpace(input.FullName)
	accountName := strings.TrimSpace(input.AccountName)
	if fullName == "" || accountName == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "Please enter the Vendor's Full Name and Account.")
	}

	key := DeriveVendorKey(fullName, accountName)
	if key == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "Full Name and Account must contain letters to build a vendor key.")
	}

	if s.logg != nil {
		ctx = s.logg.WithVendorKey(ctx, key)
	}

	if _, err := s.vendors.FindByKey(ctx, key); err == nil {
		return nil, NewDuplicateKeyError(key)
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "check vendor key")
	}

	result := &RegisterResult{VendorKey: key}
	seed := input.Seed()

	err := s.tx.WithTx(ctx, func(tx *gorm.DB) error {
		vendor := &models.Vendor{ID: key, Name: key, Key: key}
		if err := s.vendors.WithTx(tx).Create(ctx, vendor); err != nil {
			if db.IsUniqueViolation(err, "") {
				return NewDuplicateKeyError(key)
			}
			return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "create vendor")
		}

		if seed == nil {
			return nil
		}

		item := &models.Item{
			ID:          items.DeriveItemID(key, seed.Name, s.now().UnixMilli()),
			VendorID:    key,
			Name:        seed.Name,
			PriceCash:   seed.PriceCash.NullDecimal,
			PricePayday: seed.PricePayday.NullDecimal,
			IsAvailable: true,
			IsPreOrder:  seed.IsPreOrder,
		}
		if err := s.items.WithTx(tx).Create(ctx, item); err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "create seed item")
		}
		result.ItemID = item.ID
		return nil
	})
	if err != nil {
		return nil, err
	}

	if s.logg != nil {
		s.logg.Info(ctx, "vendor.registered")
	}
	return result, nil
}
