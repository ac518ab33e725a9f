package handlers

import (
	"net/http/httptest"
	"testing"
	"time"

	"viewerhub/internal/repository"

	"github.com/gin-gonic/gin"
)

func filterCtx(t *testing.T, query string) *gin.Context {
	t.Helper()
	gin.SetMode(gin.TestMode)
	c, _ := gin.CreateTestContext(httptest.NewRecorder())
	c.Request = httptest.NewRequest("GET", "/api/users?"+query, nil)
	return c
}

func TestParseUserFilter(t *testing.T) {
	c := filterCtx(t, "channel_id=abc&display_name=Ab&min_watch_seconds=60&max_money=12.5&sort=watch_time&order=desc")

	f, err := parseUserFilter(c)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}

	if f.ChannelID != "abc" || f.DisplayName != "Ab" {
		t.Fatalf("identity filters wrong: %+v", f)
	}
	if f.MinWatch == nil || *f.MinWatch != 60*time.Second {
		t.Fatalf("min watch = %v; want 60s", f.MinWatch)
	}
	if f.MaxWatch != nil {
		t.Fatalf("max watch should be unset, got %v", *f.MaxWatch)
	}
	if f.MaxMoney == nil || *f.MaxMoney != 12.5 {
		t.Fatalf("max money = %v; want 12.5", f.MaxMoney)
	}
	if f.Sort != repository.SortWatchTime || !f.Desc {
		t.Fatalf("sort wrong: %+v", f)
	}
}

func TestParseUserFilterRejectsBadInput(t *testing.T) {
	cases := []string{
		"sort=alphabetical",
		"order=sideways",
		"min_watch_seconds=-5",
		"min_watch_seconds=soon",
		"max_money=lots",
	}

	for _, q := range cases {
		if _, err := parseUserFilter(filterCtx(t, q)); err == nil {
			t.Fatalf("query %q must be rejected", q)
		}
	}
}

func TestParseUserFilterEmptyIsUnconstrained(t *testing.T) {
	f, err := parseUserFilter(filterCtx(t, ""))
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if f.ChannelID != "" || f.MinWatch != nil || f.MaxMoney != nil || f.Sort != "" || f.Desc {
		t.Fatalf("empty query must produce the zero filter, got %+v", f)
	}
}
