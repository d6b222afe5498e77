package backend

import (
	"errors"

	"github.com/tidwall/gjson"

	"sheep-dashboard/internal/domain/catalog"
)

var ErrMalformedResponse = errors.New("backend: malformed response")

// payload devuelve el contenido útil: {data: X} => X, si no el body tal cual.
func payload(raw []byte) (gjson.Result, error) {
	if len(raw) == 0 || !gjson.ValidBytes(raw) {
		return gjson.Result{}, ErrMalformedResponse
	}
	root := gjson.ParseBytes(raw)
	if root.IsObject() {
		if d := root.Get("data"); d.Exists() && d.Type != gjson.Null {
			return d, nil
		}
	}
	return root, nil
}

// decodeList tolera array pelado o {data:[...]}; cualquier otra cosa = lista vacía.
func decodeList[T any](raw []byte, conv func(gjson.Result) T) ([]T, error) {
	p, err := payload(raw)
	if err != nil {
		return nil, err
	}
	out := make([]T, 0)
	if !p.IsArray() {
		return out, nil
	}
	p.ForEach(func(_, v gjson.Result) bool {
		out = append(out, conv(v))
		return true
	})
	return out, nil
}

func decodeOne[T any](raw []byte, conv func(gjson.Result) T) (T, error) {
	var zero T
	p, err := payload(raw)
	if err != nil {
		return zero, err
	}
	if !p.IsObject() {
		return zero, ErrMalformedResponse
	}
	return conv(p), nil
}

// idOf acepta _id (mongo) o id, string o número.
func idOf(r gjson.Result) string {
	if v := r.Get("_id"); v.Exists() && v.String() != "" {
		return v.String()
	}
	return r.Get("id").String()
}

func toUser(r gjson.Result) catalog.User {
	return catalog.User{
		ID:         idOf(r),
		FirstName:  r.Get("firstName").String(),
		LastName:   r.Get("lastName").String(),
		Email:      r.Get("email").String(),
		Role:       catalog.Role(r.Get("role").String()),
		NumNat:     r.Get("num_nat").Int(),
		Address:    r.Get("address").String(),
		ReceiptURL: r.Get("receiptUrl").String(),
	}
}

func toCenter(r gjson.Result) catalog.Center {
	return catalog.Center{
		ID:       idOf(r),
		Name:     r.Get("name").String(),
		Location: r.Get("location").String(),
		Weather:  r.Get("weather").String(),
	}
}

func toSheep(r gjson.Result) catalog.Sheep {
	img := r.Get("imageUrl").String()
	if img == "" {
		img = r.Get("image").String()
	}
	return catalog.Sheep{
		ID:       idOf(r),
		Race:     r.Get("race").String(),
		Origin:   r.Get("origin").String(),
		Weight:   r.Get("weight").Float(),
		Age:      int(r.Get("age").Int()),
		Price:    r.Get("price").Float(),
		Health:   catalog.Health(r.Get("health").String()),
		ImageURL: img,
	}
}

func toAppointment(r gjson.Result) catalog.Appointment {
	// algunos backends populan la relación: {userId: {_id: ...}}
	ref := func(key string) string {
		v := r.Get(key)
		if v.IsObject() {
			return idOf(v)
		}
		return v.String()
	}
	return catalog.Appointment{
		ID:             idOf(r),
		UserID:         ref("userId"),
		PointDeVenteID: ref("pointDeVenteId"),
		Date:           r.Get("date").String(),
		Status:         catalog.AppointmentStatus(r.Get("status").String()),
		Reason:         r.Get("reason").String(),
		Notes:          r.Get("notes").String(),
	}
}
