package handlers

import (
	"encoding/json"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"fitstream/internal/models"
)

func TestListPlansReturnsActivePlansCheapestFirst(t *testing.T) {
	db := openTestDB(t)
	h := NewPlanHandler(db, nil)

	seedPlan(t, db, "Pro", 14.99, true, 0)
	seedPlan(t, db, "Basic", 4.99, false, 10)
	retired := seedPlan(t, db, "Retired", 1.99, false, 0)
	retired.IsActive = false
	require.NoError(t, db.Save(retired).Error)

	c, rec := newJSONContext(t, http.MethodGet, "/api/plans", nil, 0)
	require.NoError(t, h.ListPlans(c))
	assert.Equal(t, http.StatusOK, rec.Code)

	var plans []models.SubscriptionPlan
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &plans))
	require.Len(t, plans, 2)
	assert.Equal(t, "Basic", plans[0].Name)
	assert.Equal(t, "Pro", plans[1].Name)
}

func TestGetPlan(t *testing.T) {
	db := openTestDB(t)
	h := NewPlanHandler(db, nil)

	plan := seedPlan(t, db, "Premium", 9.99, true, 0)

	c, rec := newJSONContext(t, http.MethodGet, "/", nil, 0)
	c.SetParamNames("id")
	c.SetParamValues("1")
	require.NoError(t, h.GetPlan(c))
	assert.Equal(t, http.StatusOK, rec.Code)

	var got models.SubscriptionPlan
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
	assert.Equal(t, plan.Name, got.Name)

	c, _ = newJSONContext(t, http.MethodGet, "/", nil, 0)
	c.SetParamNames("id")
	c.SetParamValues("999")
	assert.Equal(t, http.StatusNotFound, httpStatus(t, h.GetPlan(c)))

	c, _ = newJSONContext(t, http.MethodGet, "/", nil, 0)
	c.SetParamNames("id")
	c.SetParamValues("abc")
	assert.Equal(t, http.StatusBadRequest, httpStatus(t, h.GetPlan(c)))
}
