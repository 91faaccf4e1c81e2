package service_test

import (
	"context"
	"sort"
	"strings"
	"testing"
	"time"

	"github.com/onixlab/onix-crm/models"
	"github.com/onixlab/onix-crm/repository"
	"github.com/onixlab/onix-crm/service"
	"github.com/onixlab/onix-crm/utils"
)

func init() {
	utils.InitLogger()
}

// --- Mock Store ---

// mockStore 模拟Store契约：邮箱唯一、外键检查、级联删除、倒序列表
type mockStore struct {
	customers    []models.Customer
	interactions []models.Interaction
}

func (m *mockStore) findCustomer(id string) int {
	for i := range m.customers {
		if m.customers[i].ID == id {
			return i
		}
	}
	return -1
}

func (m *mockStore) InsertCustomer(ctx context.Context, customer *models.Customer) error {
	for i := range m.customers {
		if m.customers[i].Email == customer.Email {
			return repository.ErrEmailExists
		}
	}
	m.customers = append(m.customers, *customer)
	return nil
}

func (m *mockStore) GetCustomer(ctx context.Context, id string) (*models.Customer, error) {
	i := m.findCustomer(id)
	if i < 0 {
		return nil, repository.ErrCustomerNotFound
	}
	c := m.customers[i]
	return &c, nil
}

func (m *mockStore) UpdateCustomer(ctx context.Context, id string, updates map[string]interface{}) (*models.Customer, error) {
	i := m.findCustomer(id)
	if i < 0 {
		return nil, repository.ErrCustomerNotFound
	}

	if email, ok := updates["email"].(string); ok {
		for j := range m.customers {
			if j != i && m.customers[j].Email == email {
				return nil, repository.ErrEmailExists
			}
		}
	}

	c := &m.customers[i]
	for k, v := range updates {
		switch k {
		case "firstName":
			c.FirstName = v.(string)
		case "lastName":
			c.LastName = v.(string)
		case "email":
			c.Email = v.(string)
		case "company":
			c.Company = v.(string)
		case "status":
			c.Status = v.(models.CustomerStatus)
		}
	}
	c.UpdatedAt = time.Now().UTC()
	if !c.UpdatedAt.After(c.CreatedAt) {
		c.UpdatedAt = c.CreatedAt.Add(time.Millisecond)
	}
	updated := *c
	return &updated, nil
}

func (m *mockStore) DeleteCustomer(ctx context.Context, id string) error {
	i := m.findCustomer(id)
	if i < 0 {
		return repository.ErrCustomerNotFound
	}
	m.customers = append(m.customers[:i], m.customers[i+1:]...)

	remaining := m.interactions[:0]
	for _, it := range m.interactions {
		if it.CustomerID != id {
			remaining = append(remaining, it)
		}
	}
	m.interactions = remaining
	return nil
}

func (m *mockStore) ListCustomers(ctx context.Context, page, limit int) ([]models.Customer, error) {
	start := (page - 1) * limit
	if start >= len(m.customers) {
		return []models.Customer{}, nil
	}
	end := start + limit
	if end > len(m.customers) {
		end = len(m.customers)
	}
	return append([]models.Customer{}, m.customers[start:end]...), nil
}

func (m *mockStore) CountCustomers(ctx context.Context) (int64, error) {
	return int64(len(m.customers)), nil
}

func (m *mockStore) InsertInteraction(ctx context.Context, interaction *models.Interaction) error {
	if m.findCustomer(interaction.CustomerID) < 0 {
		return repository.ErrCustomerNotFound
	}
	m.interactions = append(m.interactions, *interaction)
	return nil
}

func (m *mockStore) ListInteractionsByCustomer(ctx context.Context, customerID string) ([]models.Interaction, error) {
	if m.findCustomer(customerID) < 0 {
		return nil, repository.ErrCustomerNotFound
	}
	result := []models.Interaction{}
	for _, it := range m.interactions {
		if it.CustomerID == customerID {
			result = append(result, it)
		}
	}
	sort.SliceStable(result, func(a, b int) bool {
		return result[a].CreatedAt.After(result[b].CreatedAt)
	})
	return result, nil
}

func (m *mockStore) GetDashboardStats(ctx context.Context) (*models.DashboardStats, error) {
	counts := map[models.CustomerStatus]int64{}
	for _, c := range m.customers {
		counts[c.Status]++
	}
	return &models.DashboardStats{
		TotalCustomers:    int64(len(m.customers)),
		TotalInteractions: int64(len(m.interactions)),
		StatusCounts:      counts,
	}, nil
}

// --- Helpers ---

func newCustomerService() (*service.CustomerService, *mockStore) {
	store := &mockStore{}
	return service.NewCustomerService(store), store
}

func mustCreateCustomer(t *testing.T, svc *service.CustomerService, firstName, lastName, email string) *models.Customer {
	t.Helper()
	customer, err := svc.CreateCustomer(context.Background(), models.CustomerCreateRequest{
		FirstName: firstName,
		LastName:  lastName,
		Email:     email,
	})
	if err != nil {
		t.Fatalf("CreateCustomer failed: %v", err)
	}
	return customer
}

func assertApiError(t *testing.T, err error, statusCode int, errorCode string) *utils.ApiError {
	t.Helper()
	if err == nil {
		t.Fatal("expected error, got nil")
	}
	apiErr, ok := err.(*utils.ApiError)
	if !ok {
		t.Fatalf("expected *utils.ApiError, got %T: %v", err, err)
	}
	if apiErr.StatusCode != statusCode {
		t.Errorf("expected status %d, got %d", statusCode, apiErr.StatusCode)
	}
	if apiErr.ErrorCode != errorCode {
		t.Errorf("expected code %s, got %s", errorCode, apiErr.ErrorCode)
	}
	return apiErr
}

// --- Tests ---

func TestCreateCustomerDefaults(t *testing.T) {
	svc, _ := newCustomerService()

	customer := mustCreateCustomer(t, svc, "Jane", "Doe", "jane@x.com")

	if customer.ID == "" {
		t.Error("expected generated id")
	}
	if customer.Status != models.CustomerStatusLead {
		t.Errorf("expected default status lead, got %s", customer.Status)
	}
	if customer.CreatedAt.IsZero() || customer.UpdatedAt.IsZero() {
		t.Error("expected timestamps to be set")
	}
}

func TestCreateCustomerGeneratesUniqueIDs(t *testing.T) {
	svc, _ := newCustomerService()

	seen := map[string]bool{}
	emails := []string{"a@x.com", "b@x.com", "c@x.com"}
	for _, email := range emails {
		customer := mustCreateCustomer(t, svc, "A", "B", email)
		if seen[customer.ID] {
			t.Fatalf("duplicate id generated: %s", customer.ID)
		}
		seen[customer.ID] = true
	}
}

func TestCreateCustomerMissingFields(t *testing.T) {
	svc, _ := newCustomerService()

	_, err := svc.CreateCustomer(context.Background(), models.CustomerCreateRequest{
		FirstName: "Incomplete",
		Company:   "Incomplete Corp",
	})

	apiErr := assertApiError(t, err, 400, "VALIDATION_ERROR")
	if !strings.Contains(apiErr.Message, "last_name") || !strings.Contains(apiErr.Message, "email") {
		t.Errorf("expected missing field names in message, got %q", apiErr.Message)
	}
}

func TestCreateCustomerEmptyStringIsMissing(t *testing.T) {
	svc, _ := newCustomerService()

	_, err := svc.CreateCustomer(context.Background(), models.CustomerCreateRequest{
		FirstName: "Jane",
		LastName:  "Doe",
		Email:     "",
	})

	assertApiError(t, err, 400, "VALIDATION_ERROR")
}

func TestCreateCustomerInvalidStatus(t *testing.T) {
	svc, _ := newCustomerService()

	_, err := svc.CreateCustomer(context.Background(), models.CustomerCreateRequest{
		FirstName: "Jane",
		LastName:  "Doe",
		Email:     "jane@x.com",
		Status:    "vip",
	})

	assertApiError(t, err, 400, "VALIDATION_ERROR")
}

func TestCreateCustomerDuplicateEmail(t *testing.T) {
	svc, _ := newCustomerService()
	mustCreateCustomer(t, svc, "Jane", "Doe", "jane@x.com")

	_, err := svc.CreateCustomer(context.Background(), models.CustomerCreateRequest{
		FirstName: "Another",
		LastName:  "User",
		Email:     "jane@x.com",
	})

	apiErr := assertApiError(t, err, 400, "CONFLICT")
	if !strings.Contains(apiErr.Message, "already exists") {
		t.Errorf("expected 'already exists' in message, got %q", apiErr.Message)
	}
}

func TestUpdateCustomerPartialMerge(t *testing.T) {
	svc, _ := newCustomerService()
	created := mustCreateCustomer(t, svc, "Jane", "Doe", "jane@x.com")

	company := "Jane Corp"
	updated, err := svc.UpdateCustomer(context.Background(), created.ID, models.CustomerUpdateRequest{
		Company: &company,
	})
	if err != nil {
		t.Fatalf("UpdateCustomer failed: %v", err)
	}

	if updated.Company != "Jane Corp" {
		t.Errorf("expected company updated, got %q", updated.Company)
	}
	if updated.FirstName != "Jane" || updated.LastName != "Doe" || updated.Email != "jane@x.com" {
		t.Error("expected unspecified fields to be preserved")
	}
	if updated.Status != models.CustomerStatusLead {
		t.Errorf("expected status preserved, got %s", updated.Status)
	}
	if !updated.UpdatedAt.After(created.UpdatedAt) {
		t.Error("expected updated_at to advance")
	}
}

func TestUpdateCustomerEmptyStringIgnored(t *testing.T) {
	svc, _ := newCustomerService()
	created := mustCreateCustomer(t, svc, "Jane", "Doe", "jane@x.com")

	empty := ""
	updated, err := svc.UpdateCustomer(context.Background(), created.ID, models.CustomerUpdateRequest{
		FirstName: &empty,
	})
	if err != nil {
		t.Fatalf("UpdateCustomer failed: %v", err)
	}

	if updated.FirstName != "Jane" {
		t.Errorf("expected empty string to be treated as absent, got %q", updated.FirstName)
	}
}

func TestUpdateCustomerInvalidStatus(t *testing.T) {
	svc, _ := newCustomerService()
	created := mustCreateCustomer(t, svc, "Jane", "Doe", "jane@x.com")

	status := "archived"
	_, err := svc.UpdateCustomer(context.Background(), created.ID, models.CustomerUpdateRequest{
		Status: &status,
	})

	assertApiError(t, err, 400, "VALIDATION_ERROR")
}

func TestUpdateCustomerEmailConflict(t *testing.T) {
	svc, _ := newCustomerService()
	mustCreateCustomer(t, svc, "Jane", "Doe", "jane@x.com")
	other := mustCreateCustomer(t, svc, "John", "Smith", "john@x.com")

	email := "jane@x.com"
	_, err := svc.UpdateCustomer(context.Background(), other.ID, models.CustomerUpdateRequest{
		Email: &email,
	})

	assertApiError(t, err, 400, "CONFLICT")
}

func TestUpdateCustomerOwnEmailIsNotConflict(t *testing.T) {
	svc, _ := newCustomerService()
	created := mustCreateCustomer(t, svc, "Jane", "Doe", "jane@x.com")

	email := "jane@x.com"
	updated, err := svc.UpdateCustomer(context.Background(), created.ID, models.CustomerUpdateRequest{
		Email: &email,
	})
	if err != nil {
		t.Fatalf("expected resubmitting own email to succeed, got %v", err)
	}
	if updated.Email != "jane@x.com" {
		t.Errorf("unexpected email %q", updated.Email)
	}
}

func TestUpdateCustomerNotFound(t *testing.T) {
	svc, _ := newCustomerService()

	name := "Ghost"
	_, err := svc.UpdateCustomer(context.Background(), "missing-id", models.CustomerUpdateRequest{
		FirstName: &name,
	})

	assertApiError(t, err, 404, "RESOURCE_NOT_FOUND")
}

func TestGetCustomerNotFound(t *testing.T) {
	svc, _ := newCustomerService()

	_, err := svc.GetCustomer(context.Background(), "missing-id")

	assertApiError(t, err, 404, "RESOURCE_NOT_FOUND")
}

func TestDeleteCustomerNotFound(t *testing.T) {
	svc, _ := newCustomerService()

	err := svc.DeleteCustomer(context.Background(), "missing-id")

	assertApiError(t, err, 404, "RESOURCE_NOT_FOUND")
}

func TestDeleteCustomerCascade(t *testing.T) {
	store := &mockStore{}
	customerSvc := service.NewCustomerService(store)
	interactionSvc := service.NewInteractionService(store)

	created := mustCreateCustomer(t, customerSvc, "Jane", "Doe", "jane@x.com")
	_, err := interactionSvc.CreateInteraction(context.Background(), models.InteractionCreateRequest{
		CustomerID: created.ID,
		Type:       "call",
		Notes:      "intro call",
	})
	if err != nil {
		t.Fatalf("CreateInteraction failed: %v", err)
	}

	if err := customerSvc.DeleteCustomer(context.Background(), created.ID); err != nil {
		t.Fatalf("DeleteCustomer failed: %v", err)
	}

	// 已删除客户的互动记录查询必须返回NotFound而不是空列表
	_, err = interactionSvc.ListForCustomer(context.Background(), created.ID)
	assertApiError(t, err, 404, "RESOURCE_NOT_FOUND")

	if len(store.interactions) != 0 {
		t.Errorf("expected interactions to be cascade deleted, %d left", len(store.interactions))
	}
}

func TestListCustomersOutOfRangePage(t *testing.T) {
	svc, _ := newCustomerService()
	mustCreateCustomer(t, svc, "Jane", "Doe", "jane@x.com")

	customers, err := svc.ListCustomers(context.Background(), 99, 10)
	if err != nil {
		t.Fatalf("ListCustomers failed: %v", err)
	}
	if len(customers) != 0 {
		t.Errorf("expected empty page, got %d customers", len(customers))
	}
}
