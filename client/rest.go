package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"food-ordering-api/models"
	"food-ordering-api/store"
)

// REST is the remote Backend over HTTP/JSON. Responses use the
// {success, data, error} envelope; authenticated calls send a bearer token.
type REST struct {
	baseURL string
	http    *http.Client
}

func NewREST(baseURL string, httpClient *http.Client) *REST {
	if httpClient == nil {
		httpClient = &http.Client{Timeout: 15 * time.Second}
	}
	return &REST{baseURL: baseURL, http: httpClient}
}

type envelope struct {
	Success bool            `json:"success"`
	Data    json.RawMessage `json:"data"`
	Error   string          `json:"error"`
}

// do executes one request and decodes the envelope into out. HTTP statuses
// map onto the package error taxonomy.
func (r *REST) do(ctx context.Context, method, path, token string, body, out interface{}) error {
	var reqBody *bytes.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("client: encode request: %w", err)
		}
		reqBody = bytes.NewReader(raw)
	} else {
		reqBody = bytes.NewReader(nil)
	}

	req, err := http.NewRequestWithContext(ctx, method, r.baseURL+path, reqBody)
	if err != nil {
		return fmt.Errorf("client: build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := r.http.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrCollaboratorUnavailable, err)
	}
	defer resp.Body.Close()

	// Decode leniently: error responses may carry a non-JSON body (a proxy
	// 404 page, say) and must still map by status below.
	var env envelope
	decodeErr := json.NewDecoder(resp.Body).Decode(&env)

	if resp.StatusCode >= 400 {
		msg := env.Error
		if msg == "" {
			msg = resp.Status
		}
		switch {
		case resp.StatusCode == http.StatusUnauthorized || resp.StatusCode == http.StatusForbidden:
			return fmt.Errorf("%w: %s", ErrAuth, msg)
		case resp.StatusCode == http.StatusNotFound:
			return fmt.Errorf("%w: %s", ErrNotFound, msg)
		case resp.StatusCode < 500:
			return fmt.Errorf("%w: %s", ErrValidation, msg)
		default:
			return fmt.Errorf("%w: %s", ErrCollaboratorUnavailable, msg)
		}
	}

	if decodeErr != nil {
		return fmt.Errorf("%w: malformed response: %v", ErrCollaboratorUnavailable, decodeErr)
	}
	if out == nil {
		return nil
	}
	if err := json.Unmarshal(env.Data, out); err != nil {
		return fmt.Errorf("%w: malformed payload: %v", ErrCollaboratorUnavailable, err)
	}
	return nil
}

type authPayload struct {
	Token string       `json:"token"`
	User  *models.User `json:"user"`
}

// ── Auth ────────────────────────────────────────────────────────────────────

func (r *REST) Login(ctx context.Context, email, password string) (string, *models.User, error) {
	var out authPayload
	err := r.do(ctx, http.MethodPost, "/api/auth/login", "",
		map[string]string{"email": email, "password": password}, &out)
	if err != nil {
		return "", nil, err
	}
	return out.Token, out.User, nil
}

func (r *REST) Register(ctx context.Context, reg Registration) (string, *models.User, error) {
	var out authPayload
	if err := r.do(ctx, http.MethodPost, "/api/auth/register", "", reg, &out); err != nil {
		return "", nil, err
	}
	return out.Token, out.User, nil
}

func (r *REST) CurrentUser(ctx context.Context, token string) (*models.User, error) {
	var user models.User
	if err := r.do(ctx, http.MethodGet, "/api/auth/me", token, nil, &user); err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *REST) UpdateProfile(ctx context.Context, token string, fields map[string]interface{}) (*models.User, error) {
	var user models.User
	if err := r.do(ctx, http.MethodPut, "/api/auth/update-profile", token, fields, &user); err != nil {
		return nil, err
	}
	return &user, nil
}

// ── Catalog ─────────────────────────────────────────────────────────────────

func (r *REST) ListRestaurants(ctx context.Context) ([]models.Restaurant, error) {
	var out []models.Restaurant
	return out, r.do(ctx, http.MethodGet, "/api/restaurants", "", nil, &out)
}

func (r *REST) FeaturedRestaurants(ctx context.Context) ([]models.Restaurant, error) {
	var out []models.Restaurant
	return out, r.do(ctx, http.MethodGet, "/api/restaurants/featured", "", nil, &out)
}

func (r *REST) SearchRestaurants(ctx context.Context, q string) ([]models.Restaurant, error) {
	var out []models.Restaurant
	return out, r.do(ctx, http.MethodGet, "/api/restaurants/search?q="+url.QueryEscape(q), "", nil, &out)
}

func (r *REST) Restaurant(ctx context.Context, id uint) (*models.Restaurant, error) {
	var out models.Restaurant
	if err := r.do(ctx, http.MethodGet, "/api/restaurants/"+itoa(id), "", nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (r *REST) ListFoods(ctx context.Context) ([]models.Food, error) {
	var out []models.Food
	return out, r.do(ctx, http.MethodGet, "/api/foods", "", nil, &out)
}

func (r *REST) FeaturedFoods(ctx context.Context) ([]models.Food, error) {
	var out []models.Food
	return out, r.do(ctx, http.MethodGet, "/api/foods/featured", "", nil, &out)
}

func (r *REST) SearchFoods(ctx context.Context, q string) ([]models.Food, error) {
	var out []models.Food
	return out, r.do(ctx, http.MethodGet, "/api/foods/search?q="+url.QueryEscape(q), "", nil, &out)
}

func (r *REST) Food(ctx context.Context, id uint) (*models.Food, error) {
	var out models.Food
	if err := r.do(ctx, http.MethodGet, "/api/foods/"+itoa(id), "", nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (r *REST) FoodsByRestaurant(ctx context.Context, restaurantID uint) ([]models.Food, error) {
	var out []models.Food
	return out, r.do(ctx, http.MethodGet, "/api/foods/restaurant/"+itoa(restaurantID), "", nil, &out)
}

// ── Orders ──────────────────────────────────────────────────────────────────

func (r *REST) CreateOrder(ctx context.Context, token string, req OrderRequest) (*models.Order, error) {
	var out models.Order
	if err := r.do(ctx, http.MethodPost, "/api/orders", token, req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (r *REST) UserOrders(ctx context.Context, token string) ([]models.Order, error) {
	var out []models.Order
	return out, r.do(ctx, http.MethodGet, "/api/orders/user", token, nil, &out)
}

func (r *REST) Order(ctx context.Context, token string, id uint) (*models.Order, error) {
	var out models.Order
	if err := r.do(ctx, http.MethodGet, "/api/orders/"+itoa(id), token, nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// ── Admin ───────────────────────────────────────────────────────────────────

func (r *REST) Dashboard(ctx context.Context, token string) (*store.DashboardData, error) {
	var out store.DashboardData
	if err := r.do(ctx, http.MethodGet, "/api/admin/dashboard", token, nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (r *REST) AllOrders(ctx context.Context, token string, status models.OrderStatus) ([]models.Order, error) {
	path := "/api/admin/orders"
	if status != "" {
		path += "?status=" + url.QueryEscape(string(status))
	}
	var out []models.Order
	return out, r.do(ctx, http.MethodGet, path, token, nil, &out)
}

func (r *REST) UpdateOrderStatus(ctx context.Context, token string, id uint, status models.OrderStatus) (*models.Order, error) {
	var out models.Order
	err := r.do(ctx, http.MethodPut, "/api/admin/orders/"+itoa(id)+"/status", token,
		map[string]models.OrderStatus{"status": status}, &out)
	if err != nil {
		return nil, err
	}
	return &out, nil
}

func (r *REST) AssignDelivery(ctx context.Context, token string, orderID, partnerID uint) (*models.Order, error) {
	var out models.Order
	err := r.do(ctx, http.MethodPut, "/api/admin/orders/"+itoa(orderID)+"/assign-delivery", token,
		map[string]uint{"delivery_partner_id": partnerID}, &out)
	if err != nil {
		return nil, err
	}
	return &out, nil
}

func (r *REST) ListUsers(ctx context.Context, token string) ([]models.User, error) {
	var out []models.User
	return out, r.do(ctx, http.MethodGet, "/api/admin/users", token, nil, &out)
}

func (r *REST) DeliveryPartners(ctx context.Context, token string) ([]models.DeliveryPartner, error) {
	var out []models.DeliveryPartner
	return out, r.do(ctx, http.MethodGet, "/api/admin/delivery-partners", token, nil, &out)
}

func (r *REST) CreateRestaurant(ctx context.Context, token string, restaurant *models.Restaurant) (*models.Restaurant, error) {
	var out models.Restaurant
	if err := r.do(ctx, http.MethodPost, "/api/admin/restaurants", token, restaurant, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (r *REST) UpdateRestaurant(ctx context.Context, token string, id uint, fields map[string]interface{}) (*models.Restaurant, error) {
	var out models.Restaurant
	if err := r.do(ctx, http.MethodPut, "/api/admin/restaurants/"+itoa(id), token, fields, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (r *REST) CreateFood(ctx context.Context, token string, food *models.Food) (*models.Food, error) {
	var out models.Food
	if err := r.do(ctx, http.MethodPost, "/api/admin/foods", token, food, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (r *REST) UpdateFood(ctx context.Context, token string, id uint, fields map[string]interface{}) (*models.Food, error) {
	var out models.Food
	if err := r.do(ctx, http.MethodPut, "/api/admin/foods/"+itoa(id), token, fields, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func itoa(id uint) string {
	return strconv.FormatUint(uint64(id), 10)
}
