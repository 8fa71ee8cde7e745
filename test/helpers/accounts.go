package helpers

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/rgrams-coder/mmles/internal/payment/paymenttest"
)

// RegisterBody builds a registration payload for a Students member paid by orderID.
func RegisterBody(username, email, password, orderID, paymentID string) map[string]interface{} {
	return map[string]interface{}{
		"username":  username,
		"email":     email,
		"password":  password,
		"name":      "Test " + username,
		"phone":     "9999999999",
		"status":    "Students",
		"orderId":   orderID,
		"paymentId": paymentID,
		"signature": paymenttest.Sign(orderID, paymentID),
	}
}

// CreateOrder opens a registration order through the API and returns its id.
func CreateOrder(t *testing.T, ts *TestServer, status string) string {
	t.Helper()

	res, body := ts.SendRequest(t, http.MethodPost, "/api/payment/create-order", "", map[string]interface{}{"status": status})
	require.Equal(t, http.StatusOK, res.StatusCode, body)

	var order struct {
		OrderID string `json:"orderId"`
	}
	Decode(t, body, &order)
	require.NotEmpty(t, order.OrderID)
	return order.OrderID
}

// RegisterAndLogin pays, registers and logs a Students member in; returns the token.
func RegisterAndLogin(t *testing.T, ts *TestServer, username, password string) string {
	t.Helper()

	orderID := CreateOrder(t, ts, "Students")
	res, body := ts.SendRequest(t, http.MethodPost, "/api/users/register", "",
		RegisterBody(username, username+"@example.com", password, orderID, "pay_"+username))
	require.Equal(t, http.StatusCreated, res.StatusCode, body)

	return Login(t, ts, username, password)
}

func Login(t *testing.T, ts *TestServer, username, password string) string {
	t.Helper()

	res, body := ts.SendRequest(t, http.MethodPost, "/api/users/login", "", map[string]string{
		"username": username,
		"password": password,
	})
	require.Equal(t, http.StatusOK, res.StatusCode, body)

	var login struct {
		Token string `json:"token"`
	}
	Decode(t, body, &login)
	require.NotEmpty(t, login.Token)
	return login.Token
}
