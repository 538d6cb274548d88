package sponsorController_test

import (
	"fmt"
	"net/http"
	"testing"

	"techstorm/models"
	"techstorm/testutil"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSponsors(t *testing.T) {
	env := testutil.Setup(t)
	admin := testutil.CreateUser(t, models.RoleAdmin, "admin@example.com")
	token := testutil.Token(t, admin)

	code, res := env.Do(t, http.MethodPost, "/sponsors", token, map[string]interface{}{
		"name": "Acme", "logo_url": "/uploads/acme.png", "website_url": "https://acme.example.com", "order": 5,
	})
	require.Equal(t, http.StatusCreated, code, res.Message)
	var acme models.Sponsor
	res.Decode(t, &acme)

	code, _ = env.Do(t, http.MethodPost, "/sponsors", token, map[string]interface{}{
		"name": "Globex", "logo_url": "/uploads/globex.png", "order": 1,
	})
	require.Equal(t, http.StatusCreated, code)

	code, _ = env.Do(t, http.MethodPost, "/sponsors", token, map[string]interface{}{
		"name": "Broken", "logo_url": "/x.png", "website_url": "not a url",
	})
	assert.Equal(t, http.StatusUnprocessableEntity, code)

	code, res = env.Do(t, http.MethodGet, "/sponsors", "", nil)
	require.Equal(t, http.StatusOK, code)
	var sponsors []models.Sponsor
	res.Decode(t, &sponsors)
	require.Len(t, sponsors, 2)
	assert.Equal(t, "Globex", sponsors[0].Name)

	code, _ = env.Do(t, http.MethodPatch, fmt.Sprintf("/sponsors/%d", acme.ID), token, map[string]interface{}{"order": 0})
	require.Equal(t, http.StatusOK, code)

	code, res = env.Do(t, http.MethodGet, fmt.Sprintf("/sponsors/%d", acme.ID), "", nil)
	require.Equal(t, http.StatusOK, code)
	res.Decode(t, &acme)
	assert.Equal(t, 0, acme.Order)
	assert.Equal(t, "https://acme.example.com", acme.WebsiteURL)

	code, _ = env.Do(t, http.MethodDelete, fmt.Sprintf("/sponsors/%d", acme.ID), token, nil)
	require.Equal(t, http.StatusOK, code)
	code, _ = env.Do(t, http.MethodGet, fmt.Sprintf("/sponsors/%d", acme.ID), "", nil)
	assert.Equal(t, http.StatusNotFound, code)
}
