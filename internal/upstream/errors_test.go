package upstream

import "testing"

func TestParseAPIErrorPrecedence(t *testing.T) {
	tests := []struct {
		name       string
		status     int
		body       string
		wantMsg    string
		wantFields map[string]string
	}{
		{
			name:    "validationErrors win over everything",
			status:  422,
			body:    `{"validationErrors": [{"field": "title", "message": "title is required"}], "errors": {"x": "nope"}, "message": "bad request"}`,
			wantMsg: "title is required",
			wantFields: map[string]string{
				"title": "title is required",
			},
		},
		{
			name:    "top level errors map",
			status:  422,
			body:    `{"errors": {"title": "too long", "position": "must be positive"}, "message": "bad request"}`,
			wantMsg: "must be positive",
			wantFields: map[string]string{
				"title":    "too long",
				"position": "must be positive",
			},
		},
		{
			name:    "nested data errors map",
			status:  422,
			body:    `{"data": {"errors": {"link_url": "not a url"}}, "message": "bad request"}`,
			wantMsg: "not a url",
			wantFields: map[string]string{
				"link_url": "not a url",
			},
		},
		{
			name:    "nested data message over top level",
			status:  409,
			body:    `{"data": {"message": "slug already exists"}, "message": "conflict"}`,
			wantMsg: "slug already exists",
		},
		{
			name:    "top level message",
			status:  403,
			body:    `{"message": "forbidden"}`,
			wantMsg: "forbidden",
		},
		{
			name:    "empty body falls back to status",
			status:  502,
			body:    `{}`,
			wantMsg: "upstream request failed with status 502",
		},
		{
			name:    "non JSON body falls back to status",
			status:  500,
			body:    `<html>gateway exploded</html>`,
			wantMsg: "upstream request failed with status 500",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := parseAPIError(tt.status, []byte(tt.body))
			if err.Status != tt.status {
				t.Errorf("Status = %d, want %d", err.Status, tt.status)
			}
			if err.Message != tt.wantMsg {
				t.Errorf("Message = %q, want %q", err.Message, tt.wantMsg)
			}
			got := err.FieldErrors()
			if len(got) != len(tt.wantFields) {
				t.Fatalf("FieldErrors = %v, want %v", got, tt.wantFields)
			}
			for f, m := range tt.wantFields {
				if got[f] != m {
					t.Errorf("FieldErrors[%q] = %q, want %q", f, got[f], m)
				}
			}
		})
	}
}

func TestAPIErrorErrorString(t *testing.T) {
	err := &APIError{Status: 500}
	if got := err.Error(); got != "upstream request failed with status 500" {
		t.Errorf("Error() = %q", got)
	}
	err = &APIError{Status: 422, Message: "title is required"}
	if got := err.Error(); got != "title is required" {
		t.Errorf("Error() = %q", got)
	}
}
