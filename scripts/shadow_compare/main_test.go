package main

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestBodiesEqualNormalisesMongooseKeys(t *testing.T) {
	legacy := []byte(`{"message":"Results","data":[{"_id":"65f","__v":0,"state":"Lagos","result":100}]}`)
	current := []byte(`{"message":"Results","data":[{"id":"65f","state":"Lagos","result":100}]}`)
	assert.True(t, bodiesEqual(current, legacy))

	changed := []byte(`{"message":"Results","data":[{"id":"65f","state":"Lagos","result":101}]}`)
	assert.False(t, bodiesEqual(changed, legacy))
	assert.False(t, bodiesEqual([]byte("not json"), legacy))
}

func TestCompareTargetSendsBody(t *testing.T) {
	var seen []string
	newServer := func(status int) *httptest.Server {
		return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			seen = append(seen, r.Method+" "+r.URL.Path+" "+r.Header.Get("Content-Type"))
			w.WriteHeader(status)
			_, _ = w.Write([]byte(`{"message":"The Total Result for PartyA","Rigged":false,"result":0}`))
		}))
	}
	goSrv, legacySrv := newServer(http.StatusOK), newServer(http.StatusOK)
	defer goSrv.Close()
	defer legacySrv.Close()

	comp := compareTarget(http.DefaultClient, goSrv.URL, legacySrv.URL, defaultTargets[1])
	assert.NoError(t, comp.Err)
	assert.False(t, comp.diff())
	assert.Equal(t, []string{"GET /gettotal application/json", "GET /gettotal application/json"}, seen)
}
