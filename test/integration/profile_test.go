package integration_test

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rgrams-coder/mmles/test/helpers"
)

func TestProfile(t *testing.T) {
	t.Parallel()
	ts := helpers.NewTestServer(t)
	aliceToken := helpers.RegisterAndLogin(t, ts, "alice", "secret-pass")
	bobToken := helpers.RegisterAndLogin(t, ts, "bob", "secret-pass")

	res, body := ts.SendRequest(t, http.MethodGet, "/api/users/profile", aliceToken, nil)
	require.Equal(t, http.StatusOK, res.StatusCode, body)
	assert.Contains(t, body, `"username":"alice"`)

	res, _ = ts.SendRequest(t, http.MethodGet, "/api/users/profile", "", nil)
	assert.Equal(t, http.StatusUnauthorized, res.StatusCode)

	res, _ = ts.SendRequest(t, http.MethodGet, "/api/users/profile", "not-a-token", nil)
	assert.Equal(t, http.StatusUnauthorized, res.StatusCode)

	res, _ = ts.SendRequest(t, http.MethodGet, "/api/users/profile/alice", aliceToken, nil)
	assert.Equal(t, http.StatusOK, res.StatusCode)

	res, _ = ts.SendRequest(t, http.MethodGet, "/api/users/profile/alice", bobToken, nil)
	assert.Equal(t, http.StatusForbidden, res.StatusCode)

	update := map[string]string{
		"name":      "Alice Mines",
		"email":     "alice.mines@example.com",
		"phone":     "12345",
		"status":    "Company",
		"firmName":  "Alice Mines Pvt",
		"minerals":  "Iron ore",
		"district":  "Dhanbad",
		"username":  "mallory",
		"password":  "ignored",
	}
	res, body = ts.SendRequest(t, http.MethodPut, "/api/users/update/alice", aliceToken, update)
	require.Equal(t, http.StatusOK, res.StatusCode, body)
	assert.Contains(t, body, `"email":"alice.mines@example.com"`)
	assert.Contains(t, body, `"username":"alice"`)
	assert.Contains(t, body, "Iron ore")

	res, _ = ts.SendRequest(t, http.MethodPut, "/api/users/update/alice", bobToken, update)
	assert.Equal(t, http.StatusForbidden, res.StatusCode)

	update["email"] = "bob@example.com"
	res, _ = ts.SendRequest(t, http.MethodPut, "/api/users/update/alice", aliceToken, update)
	assert.Equal(t, http.StatusBadRequest, res.StatusCode)
}

func TestChangePassword(t *testing.T) {
	t.Parallel()
	ts := helpers.NewTestServer(t)
	token := helpers.RegisterAndLogin(t, ts, "alice", "secret-pass")

	res, _ := ts.SendRequest(t, http.MethodPost, "/api/users/change-password", token, map[string]string{
		"currentPassword": "wrong-pass",
		"newPassword":     "brand-new-pass",
	})
	assert.Equal(t, http.StatusUnauthorized, res.StatusCode)

	res, body := ts.SendRequest(t, http.MethodPost, "/api/users/change-password", token, map[string]string{
		"currentPassword": "secret-pass",
		"newPassword":     "brand-new-pass",
	})
	require.Equal(t, http.StatusOK, res.StatusCode, body)

	helpers.Login(t, ts, "alice", "brand-new-pass")

	res, _ = ts.SendRequest(t, http.MethodPost, "/api/users/login", "", map[string]string{
		"username": "alice",
		"password": "secret-pass",
	})
	assert.Equal(t, http.StatusUnauthorized, res.StatusCode)
}

func TestProfile_EditKeepsCategoryDetails(t *testing.T) {
	t.Parallel()
	ts := helpers.NewTestServer(t)

	orderID := helpers.CreateOrder(t, ts, "Individual Leasee")
	register := helpers.RegisterBody("miner", "miner@example.com", "secret-pass", orderID, "pay_miner")
	register["status"] = "Individual Leasee"
	register["state"] = "Jharkhand"
	register["district"] = "Dhanbad"
	register["plotNo"] = "42"
	res, body := ts.SendRequest(t, http.MethodPost, "/api/users/register", "", register)
	require.Equal(t, http.StatusCreated, res.StatusCode, body)
	token := helpers.Login(t, ts, "miner", "secret-pass")

	res, body = ts.SendRequest(t, http.MethodGet, "/api/users/profile/miner", token, nil)
	require.Equal(t, http.StatusOK, res.StatusCode, body)
	assert.Contains(t, body, `"plotNo":"42"`)

	// send the profile back as read, with one field edited
	var profile map[string]interface{}
	helpers.Decode(t, body, &profile)
	profile["phone"] = "7777777777"
	res, body = ts.SendRequest(t, http.MethodPut, "/api/users/update/miner", token, profile)
	require.Equal(t, http.StatusOK, res.StatusCode, body)

	res, body = ts.SendRequest(t, http.MethodGet, "/api/users/profile/miner", token, nil)
	require.Equal(t, http.StatusOK, res.StatusCode, body)
	assert.Contains(t, body, `"phone":"7777777777"`)
	assert.Contains(t, body, "Jharkhand")
	assert.Contains(t, body, "Dhanbad")
	assert.Contains(t, body, `"plotNo":"42"`)

	// a PUT with only the account fields keeps the stored payload too
	res, body = ts.SendRequest(t, http.MethodPut, "/api/users/update/miner", token, map[string]string{
		"name":   "Miner",
		"email":  "miner@example.com",
		"status": "Individual Leasee",
	})
	require.Equal(t, http.StatusOK, res.StatusCode, body)
	assert.Contains(t, body, "Jharkhand")
}
