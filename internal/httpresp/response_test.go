package httpresp

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func TestParsePagination(t *testing.T) {
	tests := []struct {
		query      string
		page, lim  int
		wantOffset int
	}{
		{"", 1, 50, 0},
		{"?page=3&limit=20", 3, 20, 40},
		{"?page=-1&limit=999", 1, 50, 0},
		{"?page=x&limit=y", 1, 50, 0},
	}

	for _, tt := range tests {
		w := httptest.NewRecorder()
		c, _ := gin.CreateTestContext(w)
		c.Request = httptest.NewRequest(http.MethodGet, "/"+tt.query, nil)

		p := ParsePagination(c, 50, 200)
		if p.Page != tt.page || p.Limit != tt.lim || p.Offset() != tt.wantOffset {
			t.Fatalf("%q: got %+v offset %d", tt.query, p, p.Offset())
		}
	}
}

func TestList_NilBecomesEmptyArray(t *testing.T) {
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)

	List[string](c, nil)

	var body map[string]json.RawMessage
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if string(body["data"]) != "[]" || string(body["total"]) != "0" {
		t.Fatalf("unexpected body: %s", w.Body.String())
	}
}
