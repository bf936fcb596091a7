package forecast

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHTTPModelForecast(t *testing.T) {
	var got requestBody
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/forecast", r.URL.Path)
		assert.Equal(t, http.MethodPost, r.Method)
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		_ = json.NewEncoder(w).Encode(responseBody{
			Model:  "prophet",
			Dates:  []time.Time{monthDate(2024, time.May, 1), monthDate(2024, time.June, 1)},
			Values: []float64{12.5, 13},
			Lower:  []float64{10, 10.5},
			Upper:  []float64{15, 15.5},
		})
	}))
	defer srv.Close()

	daily := []Point{{Date: monthDate(2024, time.April, 2), Count: 3}}
	res, err := HTTPModel{BaseURL: srv.URL}.Forecast(context.Background(), daily, 2)

	require.NoError(t, err)
	assert.Equal(t, 2, got.Periods)
	assert.Equal(t, "MS", got.Freq)
	require.Len(t, got.History, 1)
	assert.Equal(t, "prophet", res.Model)
	assert.Equal(t, []float64{12.5, 13}, res.ForecastValues)
	assert.Equal(t, []float64{10, 10.5}, res.ForecastLower)
}

func TestHTTPModelRejectsWrongPeriodCount(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewEncoder(w).Encode(responseBody{
			Dates:  []time.Time{monthDate(2024, time.May, 1)},
			Values: []float64{1},
		})
	}))
	defer srv.Close()

	_, err := HTTPModel{BaseURL: srv.URL}.Forecast(context.Background(), nil, 3)
	assert.Error(t, err)
}

func TestHTTPModelServerError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "boom", http.StatusInternalServerError)
	}))
	defer srv.Close()

	_, err := HTTPModel{BaseURL: srv.URL}.Forecast(context.Background(), nil, 1)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "500")
}
