package gateway

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"log"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"store-admin/pkg/dmodel"
)

func newTestClient(t *testing.T, handler http.HandlerFunc) (*Client, *bytes.Buffer) {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	var logs bytes.Buffer
	c, err := New(srv.URL+"/api", WithLogger(log.New(&logs, "", 0)))
	require.NoError(t, err)
	return c, &logs
}

func TestNew_RejectsBadBaseURL(t *testing.T) {
	for _, raw := range []string{"", "localhost:8080", "ftp://host/api", "http://"} {
		_, err := New(raw)
		assert.Error(t, err, raw)
	}
}

func TestListProducts_DecodesVerbatim(t *testing.T) {
	c, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodGet, r.Method)
		assert.Equal(t, "/api/products", r.URL.Path)
		w.Header().Set("Content-Type", "application/json")
		io.WriteString(w, `[{"id":"p1","name":"Laptop","price":999.99,"supplierId":"s1"},{"id":"p2","name":"Mouse","price":-3,"supplierId":""}]`)
	})

	products, err := c.ListProducts(context.Background())
	require.NoError(t, err)
	require.Len(t, products, 2)
	assert.Equal(t, "Laptop", products[0].Name)
	// no client-side schema validation of responses
	assert.Equal(t, -3.0, products[1].Price)
}

func TestRequestFailed_MessageExtraction(t *testing.T) {
	tests := []struct {
		name        string
		contentType string
		body        string
		want        string
	}{
		{"message field", "application/json", `{"message":"Supplier not found"}`, "Supplier not found"},
		{"error field", "application/json", `{"error":"database offline"}`, "database offline"},
		{"plain text", "text/plain", "  upstream exploded \n", "upstream exploded"},
		{"empty body", "text/plain", "", "Failed to delete supplier"},
		{"json without message", "application/json", `{"status":500}`, "Failed to delete supplier"},
		{"html page", "text/html", "<html>502 Bad Gateway</html>", "Failed to delete supplier"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, logs := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
				w.Header().Set("Content-Type", tt.contentType)
				w.WriteHeader(http.StatusInternalServerError)
				io.WriteString(w, tt.body)
			})

			err := c.DeleteSupplier(context.Background(), "s1")
			require.Error(t, err)
			assert.True(t, errors.Is(err, ErrRequestFailed))
			assert.False(t, errors.Is(err, ErrNetwork))
			assert.Equal(t, tt.want, err.Error())

			var reqErr *RequestError
			require.True(t, errors.As(err, &reqErr))
			assert.Equal(t, http.StatusInternalServerError, reqErr.StatusCode)
			assert.Contains(t, logs.String(), "Error deleting supplier")
		})
	}
}

func TestCreateProduct_FailureSurfacesMessage(t *testing.T) {
	c, logs := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	})

	created, err := c.CreateProduct(context.Background(), dmodel.Product{Name: "Mouse", SupplierID: "s1"}, nil)
	assert.Nil(t, created)
	require.ErrorIs(t, err, ErrRequestFailed)
	assert.Equal(t, "Failed to create product", Message(err))
	assert.Contains(t, logs.String(), "Error creating product")
}

func TestNetworkFailure(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	base := srv.URL + "/api"
	srv.Close()

	var logs bytes.Buffer
	c, err := New(base, WithLogger(log.New(&logs, "", 0)))
	require.NoError(t, err)

	_, err = c.ListOrders(context.Background())
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrRequestFailed)
	assert.ErrorIs(t, err, ErrNetwork)
	assert.True(t, strings.HasPrefix(err.Error(), "Failed to fetch orders: "), err.Error())
	assert.NotEmpty(t, logs.String())
}

func TestCreateProduct_Multipart(t *testing.T) {
	c, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		require.NoError(t, r.ParseMultipartForm(1<<20))

		var product dmodel.Product
		require.NoError(t, json.Unmarshal([]byte(r.FormValue("product")), &product))
		assert.Equal(t, "Webcam", product.Name)

		file, header, err := r.FormFile("image")
		require.NoError(t, err)
		defer file.Close()
		data, _ := io.ReadAll(file)
		assert.Equal(t, "cam.png", header.Filename)
		assert.Equal(t, "image/png", header.Header.Get("Content-Type"))
		assert.Equal(t, []byte("png-bytes"), data)

		product.ID = "p9"
		product.ImageURL = "/api/products/p9/image"
		w.WriteHeader(http.StatusCreated)
		json.NewEncoder(w).Encode(product)
	})

	created, err := c.CreateProduct(context.Background(), dmodel.Product{Name: "Webcam", Price: 49.5, SupplierID: "s2"}, &Attachment{
		Filename:    "cam.png",
		ContentType: "image/png",
		Body:        strings.NewReader("png-bytes"),
	})
	require.NoError(t, err)
	assert.Equal(t, "p9", created.ID)
	assert.Equal(t, "/api/products/p9/image", created.ImageURL)
}

func TestUpdateProduct_WithoutImage(t *testing.T) {
	c, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPut, r.Method)
		assert.Equal(t, "/api/products/p%201", r.URL.EscapedPath())
		require.NoError(t, r.ParseMultipartForm(1<<20))
		_, _, err := r.FormFile("image")
		assert.ErrorIs(t, err, http.ErrMissingFile)
		io.WriteString(w, `{"id":"p 1","name":"Renamed"}`)
	})

	updated, err := c.UpdateProduct(context.Background(), "p 1", dmodel.Product{Name: "Renamed"}, nil)
	require.NoError(t, err)
	assert.Equal(t, "Renamed", updated.Name)
}

func TestUpdateInventory_SendsJSON(t *testing.T) {
	c, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/inventory/prod1", r.URL.Path)
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))
		var update dmodel.InventoryUpdate
		require.NoError(t, json.NewDecoder(r.Body).Decode(&update))
		io.WriteString(w, `{"productId":"prod1","quantity":`+jsonInt(update.Quantity)+`,"location":"`+update.Location+`"}`)
	})

	item, err := c.UpdateInventory(context.Background(), "prod1", dmodel.InventoryUpdate{Quantity: 12, Location: "Dock"})
	require.NoError(t, err)
	assert.Equal(t, 12, item.Quantity)
	assert.Equal(t, "Dock", item.Location)
}

func TestDelete_NoContent(t *testing.T) {
	c, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodDelete, r.Method)
		w.WriteHeader(http.StatusNoContent)
	})

	assert.NoError(t, c.DeleteOrder(context.Background(), "o1"))
	assert.NoError(t, c.DeleteProduct(context.Background(), "p1"))
}

func TestSignup_FallsBackOnUnparsableBody(t *testing.T) {
	body := "Email taken"
	c, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		io.WriteString(w, body)
	})

	_, err := c.Signup(context.Background(), dmodel.SignupRequest{Name: "a", Email: "a@b.c", Password: "secret1"})
	assert.Equal(t, "Registration failed. Please try again.", Message(err))

	body = `{"message":"Error: Email is already in use!"}`
	_, err = c.Signup(context.Background(), dmodel.SignupRequest{Name: "a", Email: "a@b.c", Password: "secret1"})
	assert.Equal(t, "Error: Email is already in use!", Message(err))
}

func TestLogin_SessionCookieIsKept(t *testing.T) {
	c, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/api/auth/login":
			http.SetCookie(w, &http.Cookie{Name: "session", Value: "tok", Path: "/"})
			io.WriteString(w, `{"id":"u1","email":"ann@example.com","role":"USER"}`)
		case "/api/auth/status":
			cookie, err := r.Cookie("session")
			if err != nil || cookie.Value != "tok" {
				io.WriteString(w, `{"authenticated":false}`)
				return
			}
			io.WriteString(w, `{"authenticated":true,"user":{"id":"u1","email":"ann@example.com"}}`)
		default:
			w.WriteHeader(http.StatusNotFound)
		}
	})
	ctx := context.Background()

	status, err := c.Status(ctx)
	require.NoError(t, err)
	assert.False(t, status.Authenticated)

	login, err := c.Login(ctx, dmodel.LoginRequest{Email: "ann@example.com", Password: "secret1"})
	require.NoError(t, err)
	assert.Equal(t, "u1", login.ID)

	status, err = c.Status(ctx)
	require.NoError(t, err)
	assert.True(t, status.Authenticated)
	assert.Equal(t, "u1", status.User.ID)
}

func TestLogin_InvalidCredentialsDefault(t *testing.T) {
	c, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
	})

	_, err := c.Login(context.Background(), dmodel.LoginRequest{Email: "x@y.z", Password: "nope"})
	assert.Equal(t, "Invalid email or password", Message(err))
}

func TestUnreadableSuccessBody(t *testing.T) {
	c, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		io.WriteString(w, "not json")
	})

	_, err := c.ListInventory(context.Background())
	require.ErrorIs(t, err, ErrRequestFailed)
	assert.False(t, errors.Is(err, ErrNetwork))
	assert.Equal(t, "Failed to fetch inventory: unreadable response", err.Error())
}

func jsonInt(n int) string {
	b, _ := json.Marshal(n)
	return string(b)
}
