package handler

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/hotel-booking/internal/service"
)

func TestNumberDecoding(t *testing.T) {
	cases := map[string]float64{
		`{"v": 3}`:      3,
		`{"v": "3"}`:    3,
		`{"v": " 2.5 "}`: 2.5,
		`{"v": ""}`:     0,
		`{"v": null}`:   0,
		`{}`:            0,
	}
	for in, want := range cases {
		var out struct {
			V number `json:"v"`
		}
		if err := json.Unmarshal([]byte(in), &out); err != nil {
			t.Fatalf("%s: %v", in, err)
		}
		if float64(out.V) != want {
			t.Fatalf("%s: got %v, want %v", in, out.V, want)
		}
	}
	var bad struct {
		V number `json:"v"`
	}
	for _, in := range []string{`{"v": "two"}`, `{"v": "Infinity"}`, `{"v": "-Inf"}`, `{"v": "NaN"}`, `{"v": "1e999"}`} {
		if err := json.Unmarshal([]byte(in), &bad); err == nil {
			t.Fatalf("%s: want error, got %v", in, bad.V)
		}
	}
	if _, ok := number(2.5).wholeNumber(); ok {
		t.Fatal("2.5 is not a whole number")
	}
	if n, ok := number(4).wholeNumber(); !ok || n != 4 {
		t.Fatalf("wholeNumber(4) = %d, %v", n, ok)
	}
}

func TestDigitsDecoding(t *testing.T) {
	cases := map[string]string{
		`{"v": "123456789012"}`: "123456789012",
		`{"v": 123456789012}`:   "123456789012",
		`{"v": 12345678901}`:    "12345678901",
		`{"v": 1.5e3}`:          "1.5e3",
		`{"v": null}`:           "",
		`{}`:                    "",
	}
	for in, want := range cases {
		var out struct {
			V digits `json:"v"`
		}
		if err := json.Unmarshal([]byte(in), &out); err != nil {
			t.Fatalf("%s: %v", in, err)
		}
		if string(out.V) != want {
			t.Fatalf("%s: got %q, want %q", in, out.V, want)
		}
	}
	var bad struct {
		V digits `json:"v"`
	}
	if err := json.Unmarshal([]byte(`{"v": true}`), &bad); err == nil {
		t.Fatal("boolean must fail")
	}
}

func TestRespondError(t *testing.T) {
	cases := []struct {
		err     error
		status  int
		message string
	}{
		{&service.Error{Kind: service.ErrValidation, Message: "bad"}, http.StatusBadRequest, "bad"},
		{&service.Error{Kind: service.ErrConflict, Message: "dup"}, http.StatusBadRequest, "dup"},
		{&service.Error{Kind: service.ErrAuthentication, Message: "who"}, http.StatusUnauthorized, "who"},
		{&service.Error{Kind: service.ErrAuthorization, Message: "mine"}, http.StatusForbidden, "mine"},
		{&service.Error{Kind: service.ErrNotFound, Message: "gone"}, http.StatusNotFound, "gone"},
		{errors.New("dial tcp 127.0.0.1:3306: connection refused"), http.StatusInternalServerError, "Server error"},
	}
	e := echo.New()
	for _, tc := range cases {
		rec := httptest.NewRecorder()
		c := e.NewContext(httptest.NewRequest(http.MethodGet, "/", nil), rec)
		if err := respondError(c, tc.err, "Server error"); err != nil {
			t.Fatalf("respondError: %v", err)
		}
		if rec.Code != tc.status {
			t.Fatalf("%v: status = %d, want %d", tc.err, rec.Code, tc.status)
		}
		var body map[string]string
		if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
			t.Fatalf("decode: %v", err)
		}
		if body["message"] != tc.message || len(body) != 1 {
			t.Fatalf("%v: body = %v", tc.err, body)
		}
		if strings.Contains(rec.Body.String(), "3306") {
			t.Fatal("driver error leaked to client")
		}
	}
}
