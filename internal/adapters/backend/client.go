package backend

import (
	"context"
	"errors"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"sheep-dashboard/internal/domain/catalog"
	"sheep-dashboard/internal/domain/session"
	"sheep-dashboard/internal/platform/httpclient"
)

const DefaultBaseURL = "http://localhost:5555/api"

type Config struct {
	BaseURL  string
	Timeout  time.Duration
	Token    httpclient.TokenSource // se lee en cada request
	Observer httpclient.Observer    // opcional (metrics)
}

// Client habla con el API REST de ovejas. Errores: *httpclient.HTTPError
// (no-2xx) o *httpclient.NetworkError (transporte).
type Client struct {
	http *httpclient.Client
}

var (
	_ catalog.Backend = (*Client)(nil)
	_ session.Backend = (*Client)(nil)
)

func New(cfg Config) (*Client, error) {
	base := strings.TrimSpace(cfg.BaseURL)
	if base == "" {
		base = DefaultBaseURL
	}
	hc, err := httpclient.NewWithBaseURL(base, cfg.Timeout)
	if err != nil {
		return nil, err
	}
	hc.Token = cfg.Token
	hc.Observer = cfg.Observer
	return &Client{http: hc}, nil
}

func (c *Client) get(ctx context.Context, path string) ([]byte, error) {
	return c.http.DoRaw(ctx, http.MethodGet, path, nil, nil)
}

func (c *Client) send(ctx context.Context, method, path string, body any) ([]byte, error) {
	return c.http.DoRaw(ctx, method, path, nil, body)
}

func (c *Client) del(ctx context.Context, path string) error {
	_, err := c.http.DoRaw(ctx, http.MethodDelete, path, nil, nil)
	return err
}

func seg(id string) string { return url.PathEscape(strings.TrimSpace(id)) }

// -------------------------
// Auth
// -------------------------

func (c *Client) Login(ctx context.Context, in session.Credentials) (session.AuthResult, error) {
	raw, err := c.send(ctx, http.MethodPost, "/auth/login", map[string]string{
		"email":    strings.TrimSpace(in.Email),
		"password": in.Password,
	})
	if err != nil {
		return session.AuthResult{}, err
	}
	return decodeAuth(raw)
}

type registerRequest struct {
	Email      string `json:"email"`
	Password   string `json:"password"`
	FirstName  string `json:"firstName"`
	LastName   string `json:"lastName"`
	NumNat     int64  `json:"num_nat"`
	Address    string `json:"address"`
	ReceiptURL string `json:"receiptUrl"`
	Role       string `json:"role"`
}

// Register traduce los campos del formulario a los del backend.
// El CIN ya viene validado como número por el auth store.
func (c *Client) Register(ctx context.Context, in session.RegisterInput) (session.AuthResult, error) {
	numNat, _ := strconv.ParseInt(strings.TrimSpace(in.CIN), 10, 64)
	role := strings.TrimSpace(in.Role)
	if role == "" {
		role = string(catalog.RoleUser)
	}

	raw, err := c.send(ctx, http.MethodPost, "/auth/register", registerRequest{
		Email:      strings.TrimSpace(in.Email),
		Password:   in.Password,
		FirstName:  strings.TrimSpace(in.Name),
		LastName:   strings.TrimSpace(in.LastName),
		NumNat:     numNat,
		Address:    strings.TrimSpace(in.Address),
		ReceiptURL: strings.TrimSpace(in.Payslip),
		Role:       role,
	})
	if err != nil {
		return session.AuthResult{}, err
	}
	return decodeAuth(raw)
}

func decodeAuth(raw []byte) (session.AuthResult, error) {
	p, err := payload(raw)
	if err != nil {
		return session.AuthResult{}, err
	}
	out := session.AuthResult{Token: p.Get("token").String()}
	if u := p.Get("user"); u.IsObject() {
		user := toUser(u)
		out.User = &user
	}
	return out, nil
}

// -------------------------
// Users
// -------------------------

type userRequest struct {
	FirstName  string `json:"firstName,omitempty"`
	LastName   string `json:"lastName,omitempty"`
	Email      string `json:"email,omitempty"`
	Role       string `json:"role,omitempty"`
	NumNat     int64  `json:"num_nat,omitempty"`
	Address    string `json:"address,omitempty"`
	ReceiptURL string `json:"receiptUrl,omitempty"`
}

func (c *Client) ListUsers(ctx context.Context) ([]catalog.User, error) {
	raw, err := c.get(ctx, "/user/all")
	if err != nil {
		return nil, err
	}
	return decodeList(raw, toUser)
}

func (c *Client) GetUser(ctx context.Context, id string) (catalog.User, error) {
	raw, err := c.get(ctx, "/user/"+seg(id))
	if err != nil {
		return catalog.User{}, err
	}
	return decodeOne(raw, toUser)
}

func (c *Client) UpdateUser(ctx context.Context, id string, u catalog.User) (catalog.User, error) {
	raw, err := c.send(ctx, http.MethodPut, "/user/"+seg(id), userRequest{
		FirstName:  strings.TrimSpace(u.FirstName),
		LastName:   strings.TrimSpace(u.LastName),
		Email:      strings.TrimSpace(u.Email),
		Role:       string(u.Role),
		NumNat:     u.NumNat,
		Address:    strings.TrimSpace(u.Address),
		ReceiptURL: strings.TrimSpace(u.ReceiptURL),
	})
	if err != nil {
		return catalog.User{}, err
	}
	return decodeUpdatedUser(raw, id)
}

// decodeUpdatedUser: el backend a veces responde {user: {...}} o {message: "..."}.
func decodeUpdatedUser(raw []byte, id string) (catalog.User, error) {
	p, err := payload(raw)
	if err != nil {
		return catalog.User{}, err
	}
	if u := p.Get("user"); u.IsObject() {
		p = u
	}
	if !p.IsObject() || (!p.Get("email").Exists() && !p.Get("firstName").Exists()) {
		return catalog.User{ID: id}, nil
	}
	u := toUser(p)
	if u.ID == "" {
		u.ID = id
	}
	return u, nil
}

func (c *Client) DeleteUser(ctx context.Context, id string) error {
	return c.del(ctx, "/user/"+seg(id))
}

// -------------------------
// Centers
// -------------------------

type centerRequest struct {
	Name     string `json:"name"`
	Location string `json:"location"`
	Weather  string `json:"weather"`
}

func toCenterRequest(c catalog.Center) centerRequest {
	return centerRequest{Name: c.Name, Location: c.Location, Weather: c.Weather}
}

func (c *Client) ListCenters(ctx context.Context) ([]catalog.Center, error) {
	raw, err := c.get(ctx, "/center/all")
	if err != nil {
		return nil, err
	}
	return decodeList(raw, toCenter)
}

func (c *Client) GetCenter(ctx context.Context, id string) (catalog.Center, error) {
	raw, err := c.get(ctx, "/center/"+seg(id))
	if err != nil {
		return catalog.Center{}, err
	}
	return decodeOne(raw, toCenter)
}

func (c *Client) CreateCenter(ctx context.Context, in catalog.Center) (catalog.Center, error) {
	raw, err := c.send(ctx, http.MethodPost, "/center", toCenterRequest(in))
	if err != nil {
		return catalog.Center{}, err
	}
	return decodeOne(raw, toCenter)
}

func (c *Client) UpdateCenter(ctx context.Context, id string, in catalog.Center) (catalog.Center, error) {
	raw, err := c.send(ctx, http.MethodPut, "/center/"+seg(id), toCenterRequest(in))
	if err != nil {
		return catalog.Center{}, err
	}
	return decodeOne(raw, toCenter)
}

func (c *Client) DeleteCenter(ctx context.Context, id string) error {
	return c.del(ctx, "/center/"+seg(id))
}

// -------------------------
// Sheep
// -------------------------

type sheepRequest struct {
	Price    float64 `json:"price"`
	Race     string  `json:"race"`
	Origin   string  `json:"origin"`
	Weight   float64 `json:"weight"`
	Age      int     `json:"age"`
	Health   string  `json:"health"`
	ImageURL string  `json:"imageUrl,omitempty"`
}

func toSheepRequest(s catalog.Sheep) sheepRequest {
	health := string(s.Health)
	if strings.TrimSpace(health) == "" {
		health = string(catalog.HealthGood)
	}
	return sheepRequest{
		Price:    s.Price,
		Race:     s.Race,
		Origin:   s.Origin,
		Weight:   s.Weight,
		Age:      s.Age,
		Health:   health,
		ImageURL: s.ImageURL,
	}
}

func (c *Client) ListSheep(ctx context.Context) ([]catalog.Sheep, error) {
	raw, err := c.get(ctx, "/sheep/all")
	if err != nil {
		return nil, err
	}
	return decodeList(raw, toSheep)
}

func (c *Client) GetSheep(ctx context.Context, id string) (catalog.Sheep, error) {
	raw, err := c.get(ctx, "/sheep/"+seg(id))
	if err != nil {
		return catalog.Sheep{}, err
	}
	return decodeOne(raw, toSheep)
}

func (c *Client) CreateSheep(ctx context.Context, in catalog.Sheep) (catalog.Sheep, error) {
	raw, err := c.send(ctx, http.MethodPost, "/sheep", toSheepRequest(in))
	if err != nil {
		return catalog.Sheep{}, err
	}
	return decodeOne(raw, toSheep)
}

func (c *Client) UpdateSheep(ctx context.Context, id string, in catalog.Sheep) (catalog.Sheep, error) {
	raw, err := c.send(ctx, http.MethodPut, "/sheep/"+seg(id), toSheepRequest(in))
	if err != nil {
		return catalog.Sheep{}, err
	}
	return decodeOne(raw, toSheep)
}

func (c *Client) DeleteSheep(ctx context.Context, id string) error {
	return c.del(ctx, "/sheep/"+seg(id))
}

// -------------------------
// Appointments (rdv)
// -------------------------

type appointmentRequest struct {
	UserID         string `json:"userId"`
	PointDeVenteID string `json:"pointDeVenteId"`
	Date           string `json:"date"`
	Status         string `json:"status"`
	Reason         string `json:"reason,omitempty"`
	Notes          string `json:"notes,omitempty"`
}

func toAppointmentRequest(a catalog.Appointment) appointmentRequest {
	status := string(a.Status)
	if status == "" {
		status = string(catalog.AppointmentPending)
	}
	return appointmentRequest{
		UserID:         a.UserID,
		PointDeVenteID: a.PointDeVenteID,
		Date:           a.Date,
		Status:         status,
		Reason:         strings.TrimSpace(a.Reason),
		Notes:          strings.TrimSpace(a.Notes),
	}
}

func (c *Client) ListAppointments(ctx context.Context) ([]catalog.Appointment, error) {
	raw, err := c.get(ctx, "/rdv")
	if err != nil {
		return nil, err
	}
	return decodeList(raw, toAppointment)
}

func (c *Client) GetAppointment(ctx context.Context, id string) (catalog.Appointment, error) {
	raw, err := c.get(ctx, "/rdv/"+seg(id))
	if err != nil {
		return catalog.Appointment{}, err
	}
	return decodeOne(raw, toAppointment)
}

// CreateAppointment: con 2xx la cita ya existe en el backend aunque el body
// no se pueda leer; en ese caso devuelve lo enviado con ID vacío.
func (c *Client) CreateAppointment(ctx context.Context, in catalog.Appointment) (catalog.Appointment, error) {
	raw, err := c.send(ctx, http.MethodPost, "/rdv", toAppointmentRequest(in))
	if err != nil {
		return catalog.Appointment{}, err
	}
	out, err := decodeOne(raw, toAppointment)
	if errors.Is(err, ErrMalformedResponse) {
		in.ID = ""
		return in, nil
	}
	return out, err
}

func (c *Client) UpdateAppointment(ctx context.Context, id string, in catalog.Appointment) (catalog.Appointment, error) {
	raw, err := c.send(ctx, http.MethodPut, "/rdv/"+seg(id), toAppointmentRequest(in))
	if err != nil {
		return catalog.Appointment{}, err
	}
	return decodeOne(raw, toAppointment)
}

func (c *Client) DeleteAppointment(ctx context.Context, id string) error {
	return c.del(ctx, "/rdv/"+seg(id))
}
