package verification

import (
	"context"
	"fmt"
	"strings"
	"vendorHub/domain"
	"vendorHub/pkg/logger"
	"vendorHub/pkg/metrics"
)

const defaultPageSize = 10

// vendorFilter matches a hydrated vendor against the status query parameter.
type vendorFilter func(status domain.VerificationStatus, store *domain.Store) bool

func parseVendorFilter(raw string) (vendorFilter, error) {
	switch strings.ToUpper(strings.TrimSpace(raw)) {
	case "":
		return nil, nil
	case "VERIFIED", "APPROVED":
		return func(status domain.VerificationStatus, store *domain.Store) bool {
			return store != nil && store.IsVerified && status == domain.VerificationApproved
		}, nil
	case "UNVERIFIED", "PENDING":
		return matchStatus(domain.VerificationPending), nil
	case "REJECTED":
		return matchStatus(domain.VerificationRejected), nil
	case "FORM_APPROVED":
		return matchStatus(domain.VerificationFormApproved), nil
	}

	return nil, fmt.Errorf("%w: invalid status filter %q", domain.ErrInvalidArgument, raw)
}

func matchStatus(want domain.VerificationStatus) vendorFilter {
	return func(status domain.VerificationStatus, _ *domain.Store) bool {
		return status == want
	}
}

// ListUnverifiedVendors returns one page of the vendor review queue. Vendors without a store get a
// placeholder store created on the way. Stats describe every vendor in the queue, before any filter.
func (s *VerificationService) ListUnverifiedVendors(ctx context.Context, query domain.VendorListQuery) (domain.VendorListResult, error) {
	if err := ctx.Err(); err != nil {
		logger.Error("context error when list unverified vendors")
		return domain.VendorListResult{}, fmt.Errorf("context error: %w", err)
	}

	filter, err := parseVendorFilter(query.Status)
	if err != nil {
		logger.Error("Invalid vendor status filter", "status", query.Status)
		return domain.VendorListResult{}, err
	}

	var documentFilter domain.DocumentStatus
	if strings.TrimSpace(query.DocumentStatus) != "" {
		if documentFilter, err = domain.ParseDocumentStatus(query.DocumentStatus); err != nil {
			logger.Error("Invalid document status filter", "document_status", query.DocumentStatus)
			return domain.VendorListResult{}, err
		}
	}

	page, limit := s.normalizePage(query.Page, query.Limit)

	roles := []domain.Role{domain.RoleVendor}
	if s.opts.IncludePendingVendors {
		roles = append(roles, domain.RoleVendorPending)
	}

	vendors, err := s.userRepo.FindByRoles(ctx, roles)
	if err != nil {
		logger.Error("Failed to find vendors", "error", err)
		return domain.VendorListResult{}, err
	}

	items, err := s.hydrateVendors(ctx, vendors)
	if err != nil {
		return domain.VendorListResult{}, err
	}

	stats := computeStats(items)

	search := strings.ToLower(strings.TrimSpace(query.Search))
	filtered := make([]domain.VendorListItem, 0, len(items))
	for _, item := range items {
		if filter != nil && !filter(item.Vendor.Status, item.Store) {
			continue
		}
		if documentFilter != "" && !hasDocumentStatus(item.Documents, documentFilter) {
			continue
		}
		if search != "" && !matchesSearch(item, search) {
			continue
		}
		filtered = append(filtered, item)
	}

	total := len(filtered)
	totalPages := 1
	if total > 0 {
		totalPages = (total + limit - 1) / limit
	}

	start, end := pageWindow(page, limit, total)

	return domain.VendorListResult{
		Data: filtered[start:end],
		Pagination: domain.Pagination{
			CurrentPage:  page,
			TotalPages:   totalPages,
			TotalItems:   total,
			ItemsPerPage: limit,
		},
		Stats: stats,
	}, nil
}

// pageWindow returns the slice bounds of page within total items. Pages past the end are empty;
// the comparison is done before multiplying so huge page numbers cannot overflow.
func pageWindow(page, limit, total int) (int, int) {
	if page-1 >= (total+limit-1)/limit {
		return total, total
	}

	start := (page - 1) * limit
	end := start + limit
	if end > total {
		end = total
	}

	return start, end
}

func (s *VerificationService) normalizePage(page, limit int) (int, int) {
	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = defaultPageSize
	}
	if limit > s.opts.MaxPageSize {
		limit = s.opts.MaxPageSize
	}

	return page, limit
}

// hydrateVendors attaches store, documents and resolved status to each vendor, keeping the input order.
func (s *VerificationService) hydrateVendors(ctx context.Context, vendors []domain.User) ([]domain.VendorListItem, error) {
	ids := make([]uint, 0, len(vendors))
	for _, v := range vendors {
		ids = append(ids, v.ID)
	}

	stores, err := s.storeRepo.FindByVendorIDs(ctx, ids)
	if err != nil {
		logger.Error("Failed to find vendor stores", "error", err)
		return nil, err
	}
	storeByVendor := make(map[uint]domain.Store, len(stores))
	for _, st := range stores {
		storeByVendor[st.VendorID] = st
	}

	documents, err := s.documentRepo.FindByOwners(ctx, ids)
	if err != nil {
		logger.Error("Failed to find vendor documents", "error", err)
		return nil, err
	}
	documentsByVendor := make(map[uint][]domain.StoreDocument, len(vendors))
	for _, doc := range documents {
		documentsByVendor[doc.OwnerVendorID] = append(documentsByVendor[doc.OwnerVendorID], doc)
	}

	items := make([]domain.VendorListItem, 0, len(vendors))
	for _, v := range vendors {
		store, ok := storeByVendor[v.ID]
		if !ok {
			store, err = s.storeRepo.EnsureForVendor(ctx, placeholderStore(v))
			if err != nil {
				logger.Warn("Failed to materialize vendor store, skipping vendor", "vendor_id", v.ID, "error", err)
				metrics.StoreMaterializations.WithLabelValues("failed").Inc()
				continue
			}
			metrics.StoreMaterializations.WithLabelValues("created").Inc()
		}

		docs := documentsByVendor[v.ID]
		if docs == nil {
			docs = []domain.StoreDocument{}
		}

		st := store
		items = append(items, domain.VendorListItem{
			Vendor: domain.VendorSummary{
				ID:        v.ID,
				FirstName: v.FirstName,
				LastName:  v.LastName,
				Email:     v.Email,
				Mobile:    v.Mobile,
				Role:      v.Role,
				Status:    ResolveStatus(v, &st),
				IsActive:  v.IsActive,
			},
			Store:     &st,
			Documents: docs,
		})
	}

	return items, nil
}

// placeholderStore builds the minimal store created for a vendor who has none yet.
func placeholderStore(v domain.User) domain.Store {
	storeName := strings.TrimSpace(v.FirstName)
	if storeName == "" {
		storeName = "store"
	}

	firstName := v.FirstName
	if strings.TrimSpace(firstName) == "" {
		firstName = "user"
	}
	userName := strings.ToLower(strings.Join(strings.Fields(firstName+v.LastName), ""))

	pinCode := strings.TrimSpace(v.PinCode)
	if pinCode == "" {
		pinCode = "000000"
	}

	return domain.Store{
		VendorID:  v.ID,
		StoreName: storeName + "'s Store",
		UserName:  userName,
		City:      v.City,
		State:     v.State,
		Country:   v.Country,
		PinCode:   pinCode,
	}
}

func computeStats(items []domain.VendorListItem) domain.VendorListStats {
	stats := domain.VendorListStats{TotalVendors: len(items)}

	for _, item := range items {
		switch {
		case item.Store.IsVerified:
			stats.VerifiedCount++
		case item.Store.IsRejected:
			stats.RejectedCount++
		default:
			stats.UnverifiedCount++
		}

		for _, doc := range item.Documents {
			switch doc.Status {
			case domain.DocumentPending:
				stats.Documents.Pending++
			case domain.DocumentApproved:
				stats.Documents.Approved++
			case domain.DocumentRejected:
				stats.Documents.Rejected++
			}
		}
	}

	return stats
}

func hasDocumentStatus(documents []domain.StoreDocument, status domain.DocumentStatus) bool {
	for _, doc := range documents {
		if doc.Status == status {
			return true
		}
	}

	return false
}

func matchesSearch(item domain.VendorListItem, search string) bool {
	fields := []string{
		item.Vendor.FirstName,
		item.Vendor.LastName,
		item.Vendor.Email,
		item.Vendor.Mobile,
	}
	if item.Store != nil {
		fields = append(fields, item.Store.StoreName, item.Store.UserName)
	}

	for _, field := range fields {
		if strings.Contains(strings.ToLower(field), search) {
			return true
		}
	}

	return false
}
