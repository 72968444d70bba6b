package partner

import (
	"context"
	"encoding/json"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/gasdepot/backend/internal/domain/partner"
	"github.com/gasdepot/backend/internal/domain/shared"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

const customerListingEntity = "customers"

// CustomerService handles customer-related business operations
type CustomerService struct {
	customerRepo partner.CustomerRepository
	addressRepo  partner.AddressRepository
	listingCache shared.ListingCache
	cacheTTL     time.Duration
	logger       *zap.Logger
}

// NewCustomerService creates a new CustomerService
func NewCustomerService(
	customerRepo partner.CustomerRepository,
	addressRepo partner.AddressRepository,
	listingCache shared.ListingCache,
	cacheTTL time.Duration,
	logger *zap.Logger,
) *CustomerService {
	return &CustomerService{
		customerRepo: customerRepo,
		addressRepo:  addressRepo,
		listingCache: listingCache,
		cacheTTL:     cacheTTL,
		logger:       logger,
	}
}

// Create creates a new customer
func (s *CustomerService) Create(ctx context.Context, req CreateCustomerRequest) (*CustomerResponse, error) {
	exists, err := s.customerRepo.ExistsByCode(ctx, strings.ToUpper(strings.TrimSpace(req.Code)))
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, shared.NewDomainError("ALREADY_EXISTS", "Customer with this code already exists")
	}

	customer, err := partner.NewCustomer(req.Code, req.Name)
	if err != nil {
		return nil, err
	}

	if req.ContactName != "" || req.Phone != "" || req.Email != "" {
		if err := customer.SetContact(req.ContactName, req.Phone, req.Email); err != nil {
			return nil, err
		}
	}

	if req.TaxID != "" {
		if err := customer.SetTaxID(req.TaxID); err != nil {
			return nil, err
		}
	}

	if req.CreditTermsDays != nil {
		if err := customer.SetCreditTerms(*req.CreditTermsDays); err != nil {
			return nil, err
		}
	}

	if req.Notes != "" {
		customer.SetNotes(req.Notes)
	}

	if err := s.customerRepo.Save(ctx, customer); err != nil {
		return nil, err
	}
	s.publishEvents(ctx, customer)
	s.invalidateListing(ctx)

	response := ToCustomerResponse(customer)
	return &response, nil
}

// GetByID retrieves a customer by ID
func (s *CustomerService) GetByID(ctx context.Context, customerID uuid.UUID) (*CustomerResponse, error) {
	customer, err := s.customerRepo.FindByID(ctx, customerID)
	if err != nil {
		return nil, err
	}

	response := ToCustomerResponse(customer)
	return &response, nil
}

// GetByCode retrieves a customer by code
func (s *CustomerService) GetByCode(ctx context.Context, code string) (*CustomerResponse, error) {
	customer, err := s.customerRepo.FindByCode(ctx, strings.ToUpper(strings.TrimSpace(code)))
	if err != nil {
		return nil, err
	}

	response := ToCustomerResponse(customer)
	return &response, nil
}

// List retrieves a page of customers annotated with their primary address.
// The page is composed from two queries: customers that have a primary
// address, joined to it, and customers without one, excluding ids already
// returned by the first query. Both halves share the same search and status
// predicates; the union is re-sorted by creation time descending and capped
// at the page size, so a page may carry fewer rows than the limit even when
// more rows exist.
func (s *CustomerService) List(ctx context.Context, filter CustomerListFilter) (*shared.Paginated[CustomerListItem], error) {
	if filter.Page <= 0 {
		filter.Page = 1
	}
	if filter.Limit <= 0 || filter.Limit > 100 {
		filter.Limit = 20
	}

	fingerprint := customerListFingerprint(filter)
	if s.listingCache != nil {
		if payload, ok := s.listingCache.Get(ctx, customerListingEntity, fingerprint); ok {
			var cached shared.Paginated[CustomerListItem]
			if err := json.Unmarshal(payload, &cached); err == nil {
				return &cached, nil
			}
		}
	}

	repoFilter := shared.Filter{
		Page:     filter.Page,
		PageSize: filter.Limit,
		OrderBy:  "created_at",
		OrderDir: "desc",
		Search:   filter.Search,
		Filters:  make(map[string]interface{}),
	}
	if filter.AccountStatus != "" {
		repoFilter.Filters["account_status"] = filter.AccountStatus
	}

	withPrimary, err := s.customerRepo.FindPageWithPrimary(ctx, repoFilter)
	if err != nil {
		return nil, err
	}
	countWith, err := s.customerRepo.CountWithPrimary(ctx, repoFilter)
	if err != nil {
		return nil, err
	}

	excludeIDs := make([]uuid.UUID, len(withPrimary))
	for i := range withPrimary {
		excludeIDs[i] = withPrimary[i].ID
	}

	withoutPrimary, err := s.customerRepo.FindPageWithoutPrimary(ctx, excludeIDs, repoFilter)
	if err != nil {
		return nil, err
	}
	countWithout, err := s.customerRepo.CountWithoutPrimary(ctx, repoFilter)
	if err != nil {
		return nil, err
	}

	items := make([]CustomerListItem, 0, len(withPrimary)+len(withoutPrimary))
	for i := range withPrimary {
		item := CustomerListItem{CustomerResponse: ToCustomerResponse(&withPrimary[i].Customer)}
		if withPrimary[i].PrimaryAddress != nil {
			address := ToAddressResponse(withPrimary[i].PrimaryAddress)
			item.PrimaryAddress = &address
		}
		items = append(items, item)
	}
	for i := range withoutPrimary {
		items = append(items, CustomerListItem{CustomerResponse: ToCustomerResponse(&withoutPrimary[i])})
	}

	sort.SliceStable(items, func(i, j int) bool {
		return items[i].CreatedAt.After(items[j].CreatedAt)
	})
	if len(items) > filter.Limit {
		items = items[:filter.Limit]
	}

	result := shared.NewPaginated(items, countWith+countWithout, filter.Page, filter.Limit)
	if s.listingCache != nil {
		if payload, err := json.Marshal(result); err == nil {
			if err := s.listingCache.Set(ctx, customerListingEntity, fingerprint, payload, s.cacheTTL); err != nil {
				s.logger.Warn("failed to cache customer listing", zap.Error(err))
			}
		}
	}
	return &result, nil
}

// Update updates an existing customer. Nil request fields are left untouched.
func (s *CustomerService) Update(ctx context.Context, customerID uuid.UUID, req UpdateCustomerRequest) (*CustomerResponse, error) {
	customer, err := s.customerRepo.FindByID(ctx, customerID)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		if err := customer.Update(*req.Name); err != nil {
			return nil, err
		}
	}

	if req.ContactName != nil || req.Phone != nil || req.Email != nil {
		contactName := customer.ContactName
		phone := customer.Phone
		email := customer.Email
		if req.ContactName != nil {
			contactName = *req.ContactName
		}
		if req.Phone != nil {
			phone = *req.Phone
		}
		if req.Email != nil {
			email = *req.Email
		}
		if err := customer.SetContact(contactName, phone, email); err != nil {
			return nil, err
		}
	}

	if req.TaxID != nil {
		if err := customer.SetTaxID(*req.TaxID); err != nil {
			return nil, err
		}
	}

	if req.CreditTermsDays != nil {
		if err := customer.SetCreditTerms(*req.CreditTermsDays); err != nil {
			return nil, err
		}
	}

	if req.Notes != nil {
		customer.SetNotes(*req.Notes)
	}

	if req.AccountStatus != nil {
		if err := customer.SetAccountStatus(partner.AccountStatus(*req.AccountStatus)); err != nil {
			return nil, err
		}
	}

	if err := s.customerRepo.Save(ctx, customer); err != nil {
		return nil, err
	}
	s.publishEvents(ctx, customer)
	s.invalidateListing(ctx)

	response := ToCustomerResponse(customer)
	return &response, nil
}

// Delete removes a customer together with its delivery addresses
func (s *CustomerService) Delete(ctx context.Context, customerID uuid.UUID) error {
	if _, err := s.customerRepo.FindByID(ctx, customerID); err != nil {
		return err
	}

	if err := s.addressRepo.DeleteByCustomer(ctx, customerID); err != nil {
		return err
	}
	if err := s.customerRepo.Delete(ctx, customerID); err != nil {
		return err
	}
	s.invalidateListing(ctx)
	return nil
}

func (s *CustomerService) publishEvents(ctx context.Context, root shared.AggregateRoot) {
	for _, event := range root.GetDomainEvents() {
		s.logger.Info("domain event",
			zap.String("event_type", event.EventType()),
			zap.String("aggregate_type", event.AggregateType()),
			zap.String("aggregate_id", event.AggregateID().String()),
		)
	}
	root.ClearDomainEvents()
}

func (s *CustomerService) invalidateListing(ctx context.Context) {
	if s.listingCache == nil {
		return
	}
	if err := s.listingCache.Invalidate(ctx, customerListingEntity); err != nil {
		s.logger.Warn("failed to invalidate customer listing cache", zap.Error(err))
	}
}

// customerListFingerprint keys the cache on the full filter set. Search is
// case-folded but not trimmed: the query matches case-insensitively, while
// leading or trailing whitespace changes the LIKE pattern.
func customerListFingerprint(filter CustomerListFilter) string {
	return fmt.Sprintf("page=%d|limit=%d|search=%s|status=%s",
		filter.Page, filter.Limit, strings.ToLower(filter.Search), filter.AccountStatus)
}
