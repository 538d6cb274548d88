package eventController_test

import (
	"fmt"
	"net/http"
	"testing"
	"time"

	"techstorm/database"
	"techstorm/models"
	"techstorm/testutil"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEventLifecycle(t *testing.T) {
	env := testutil.Setup(t)
	admin := testutil.CreateUser(t, models.RoleAdmin, "admin@example.com")
	mentor := testutil.CreateUser(t, models.RoleMentor, "mentor@example.com")
	token := testutil.Token(t, admin)

	body := map[string]interface{}{
		"title":      "Hack Night",
		"date":       time.Now().Add(72 * time.Hour).UTC().Format(time.RFC3339),
		"location":   "Lagos",
		"is_virtual": false,
	}

	code, _ := env.Do(t, http.MethodPost, "/events", "", body)
	assert.Equal(t, http.StatusUnauthorized, code)
	code, _ = env.Do(t, http.MethodPost, "/events", testutil.Token(t, mentor), body)
	assert.Equal(t, http.StatusForbidden, code)

	code, res := env.Do(t, http.MethodPost, "/events", token, body)
	require.Equal(t, http.StatusCreated, code, res.Message)
	var event models.Event
	res.Decode(t, &event)

	require.NoError(t, database.Database.Db.Create(&models.Event{Title: "Last year", Date: time.Now().AddDate(-1, 0, 0)}).Error)

	code, res = env.Do(t, http.MethodGet, "/events", "", nil)
	require.Equal(t, http.StatusOK, code)
	var all []models.Event
	res.Decode(t, &all)
	require.Len(t, all, 2)
	assert.Equal(t, "Last year", all[0].Title)

	code, res = env.Do(t, http.MethodGet, "/events/upcoming", "", nil)
	require.Equal(t, http.StatusOK, code)
	var upcoming []models.Event
	res.Decode(t, &upcoming)
	require.Len(t, upcoming, 1)
	assert.Equal(t, "Hack Night", upcoming[0].Title)

	code, _ = env.Do(t, http.MethodPatch, fmt.Sprintf("/events/%d", event.ID), token, map[string]interface{}{"is_virtual": true})
	require.Equal(t, http.StatusOK, code)
	var stored models.Event
	database.Database.Db.First(&stored, event.ID)
	assert.True(t, stored.IsVirtual)
	assert.Equal(t, "Lagos", stored.Location)

	code, _ = env.Do(t, http.MethodDelete, fmt.Sprintf("/events/%d", event.ID), token, nil)
	require.Equal(t, http.StatusOK, code)
	code, _ = env.Do(t, http.MethodDelete, fmt.Sprintf("/events/%d", event.ID), token, nil)
	assert.Equal(t, http.StatusNotFound, code)
}

func TestCreateEventValidation(t *testing.T) {
	env := testutil.Setup(t)
	admin := testutil.CreateUser(t, models.RoleAdmin, "admin@example.com")

	code, res := env.Do(t, http.MethodPost, "/events", testutil.Token(t, admin), map[string]interface{}{"title": "No date"})
	require.Equal(t, http.StatusUnprocessableEntity, code)
	var errs map[string]string
	res.Decode(t, &errs)
	assert.Contains(t, errs, "date")

	code, _ = env.Do(t, http.MethodPost, "/events", testutil.Token(t, admin), map[string]interface{}{"title": "Bad date", "date": "tomorrow"})
	assert.Equal(t, http.StatusBadRequest, code)

	for _, date := range []interface{}{"", nil} {
		code, res = env.Do(t, http.MethodPost, "/events", testutil.Token(t, admin), map[string]interface{}{"title": "Blank date", "date": date})
		require.Equal(t, http.StatusUnprocessableEntity, code, "date %#v", date)
		errs = nil
		res.Decode(t, &errs)
		assert.Equal(t, "Date is required!", errs["date"])
	}

	var stored int64
	database.Database.Db.Model(&models.Event{}).Count(&stored)
	assert.Zero(t, stored)
}
