package bind

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	perr "trainerbot/internal/platform/errors"
)

type submitBody struct {
	TaskID     string `json:"taskId" validate:"required,taskid"`
	UserAnswer string `json:"userAnswer" validate:"max=20"`
}

func post(body string) *http.Request {
	return httptest.NewRequest(http.MethodPost, "/", strings.NewReader(body))
}

func TestParseJSON_OK(t *testing.T) {
	t.Parallel()

	got, err := ParseJSON[submitBody](post(`{"taskId":"cohort-analysis-sql","userAnswer":"SELECT 1","extra":true}`))
	if err != nil {
		t.Fatalf("ParseJSON: %v", err)
	}
	if got.TaskID != "cohort-analysis-sql" || got.UserAnswer != "SELECT 1" {
		t.Fatalf("got %+v", got)
	}
}

func TestParseJSON_Failures(t *testing.T) {
	t.Parallel()

	long := strings.Repeat("x", 21)
	cases := []struct {
		name  string
		body  string
		opts  []JSONOptions
		code  perr.ErrorCode
		field string
		msg   string
	}{
		{"empty body", ``, nil, perr.ErrorCodeJSON, "", "empty body"},
		{"broken json", `{"taskId":`, nil, perr.ErrorCodeJSON, "", "invalid JSON"},
		{"trailing data", `{"taskId":"a"} {}`, nil, perr.ErrorCodeJSON, "", "unexpected trailing data"},
		{"unknown field", `{"taskId":"a","x":1}`, []JSONOptions{{DisallowUnknown: true}}, perr.ErrorCodeJSON, "", "invalid JSON"},
		{"too large", `{"taskId":"a","userAnswer":"` + long + `"}`, []JSONOptions{{MaxBytes: 16}}, perr.ErrorCodeJSON, "", "invalid JSON"},
		{"missing task", `{"userAnswer":"x"}`, nil, perr.ErrorCodeValidation, "taskId", "taskId is a required field"},
		{"bad task id", `{"taskId":"../etc"}`, nil, perr.ErrorCodeValidation, "taskId", "taskId must be a task id of letters, digits, '-' or '_'"},
		{"answer too long", `{"taskId":"a","userAnswer":"` + long + `"}`, nil, perr.ErrorCodeValidation, "userAnswer", "userAnswer must be at most 20"},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			_, err := ParseJSON[submitBody](post(c.body), c.opts...)
			e, ok := perr.As(err)
			if !ok {
				t.Fatalf("want *perr.Error, got %v", err)
			}
			if e.Code() != c.code || e.Field() != c.field || e.Message() != c.msg {
				t.Fatalf("got code=%v field=%q msg=%q", e.Code(), e.Field(), e.Message())
			}
		})
	}
}

func TestParseJSON_NilBody(t *testing.T) {
	t.Parallel()

	r := httptest.NewRequest(http.MethodPost, "/", nil)
	r.Body = nil
	if _, err := ParseJSON[submitBody](r); perr.CodeOf(err) != perr.ErrorCodeJSON {
		t.Fatalf("err = %v", err)
	}
}

func TestStruct_MinTranslation(t *testing.T) {
	t.Parallel()

	type q struct {
		QueryID string `json:"queryId" validate:"min=3"`
	}
	err := Struct(q{QueryID: "a"})
	if e, _ := perr.As(err); e == nil || e.Message() != "queryId must be at least 3" || e.Field() != "queryId" {
		t.Fatalf("err = %v", err)
	}
	if Struct(q{QueryID: "abc"}) != nil {
		t.Fatalf("valid struct rejected")
	}
}

func TestStruct_NotAStruct(t *testing.T) {
	t.Parallel()

	if perr.CodeOf(Struct(42)) != perr.ErrorCodeUnknown {
		t.Fatalf("expected internal error for non struct")
	}
}
