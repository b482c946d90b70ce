package service

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"ladder_zone/internal/common"
	"ladder_zone/internal/platform/judge"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const acceptedPage = `<html><body>
<div class="_my-submissions_1jl4n_157">
  <div class="_data__container_1jl4n_188">
    <div class="_table__box_1jl4n_192">
      <p class="_key_1jl4n_219">Result</p>
      <div class="_value_1jl4n_231">Accepted</div>
    </div>
  </div>
</div>
</body></html>`

const noSubmissionsPage = `<html><body>
<div class="_my-submissions_1jl4n_157"><p>No submissions yet</p></div>
</body></html>`

func TestJudgeServiceCheckAccepted(t *testing.T) {
	ctx := context.Background()
	cookies := []judge.Cookie{{Name: "SESSIONID", Value: "abc"}}

	t.Run("accepted verdict", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, "/problems/FLOW001", r.URL.Path)
			assert.Equal(t, "submissions", r.URL.Query().Get("tab"))
			cookie, err := r.Cookie("SESSIONID")
			if assert.NoError(t, err) {
				assert.Equal(t, "abc", cookie.Value)
			}
			w.Write([]byte(acceptedPage))
		}))
		defer srv.Close()

		svc := NewJudgeService(judge.NewClient(srv.URL, 5*time.Second), nil, time.Minute)
		result, err := svc.CheckAccepted(ctx, cookies, "FLOW001")
		require.NoError(t, err)
		assert.True(t, result.Accepted)
		assert.True(t, result.HasSubmission)
	})

	t.Run("no submissions", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Write([]byte(noSubmissionsPage))
		}))
		defer srv.Close()

		svc := NewJudgeService(judge.NewClient(srv.URL, 5*time.Second), nil, time.Minute)
		result, err := svc.CheckAccepted(ctx, cookies, "FLOW001")
		require.NoError(t, err)
		assert.False(t, result.Accepted)
		assert.False(t, result.HasSubmission)
	})

	t.Run("judge site failure surfaces as error", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusBadGateway)
		}))
		defer srv.Close()

		svc := NewJudgeService(judge.NewClient(srv.URL, 5*time.Second), nil, time.Minute)
		_, err := svc.CheckAccepted(ctx, cookies, "FLOW001")
		assert.Error(t, err)
	})

	t.Run("missing input", func(t *testing.T) {
		svc := NewJudgeService(judge.NewClient("http://unused.invalid", time.Second), nil, time.Minute)
		_, err := svc.CheckAccepted(ctx, cookies, "")
		assert.ErrorIs(t, err, common.ErrBadRequest)
		_, err = svc.CheckAccepted(ctx, nil, "FLOW001")
		assert.ErrorIs(t, err, common.ErrBadRequest)
	})

	t.Run("every check hits the judge when no cache is configured", func(t *testing.T) {
		var hits atomic.Int32
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			hits.Add(1)
			w.Write([]byte(acceptedPage))
		}))
		defer srv.Close()

		svc := NewJudgeService(judge.NewClient(srv.URL, 5*time.Second), nil, time.Minute)
		for i := 0; i < 3; i++ {
			_, err := svc.CheckAccepted(ctx, cookies, "FLOW001")
			require.NoError(t, err)
		}
		assert.Equal(t, int32(3), hits.Load())
	})
}
