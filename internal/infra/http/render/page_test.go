package render

import (
	"bytes"
	"html/template"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/xavierca1/londonslush-leads/internal/entity"
)

func TestPage(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Page(&buf, "Fish & Chips <Menu>", template.HTML("<p>hello</p>")))

	out := buf.String()
	assert.True(t, strings.HasPrefix(out, "<!DOCTYPE html>"))
	assert.Contains(t, out, "<title>Fish &amp; Chips &lt;Menu&gt;</title>")
	assert.Contains(t, out, "<p>hello</p>")
	assert.Contains(t, out, "</html>")
}

func TestPageDefaultTitle(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Page(&buf, "  ", ""))
	assert.Contains(t, buf.String(), "<title>London Slush - Premium Franchise &amp; Business Opportunities</title>")
}

func TestThankYou(t *testing.T) {
	tests := []struct {
		name     string
		kind     entity.LeadKind
		visitor  string
		contains []string
	}{
		{
			name:     "retail",
			kind:     entity.LeadKindRetail,
			visitor:  "Asha Rao",
			contains: []string{"Thank You, Asha Rao!", "Request Received Successfully!", "fa-coffee"},
		},
		{
			name:     "distributor",
			kind:     entity.LeadKindDistributor,
			visitor:  "O'Brien & Sons",
			contains: []string{"Thank You, O&#39;Brien &amp; Sons!", "Application Under Review!", "fa-truck"},
		},
		{
			name:     "unknown kind and blank name",
			kind:     entity.LeadKind("wholesale"),
			visitor:  "",
			contains: []string{"Thank You, there!", "Request Received Successfully!"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			require.NoError(t, ThankYou(&buf, tt.kind, tt.visitor))
			for _, s := range tt.contains {
				assert.Contains(t, buf.String(), s)
			}
		})
	}
}

func TestThankYouEscapesName(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, ThankYou(&buf, entity.LeadKindRetail, "<img src=x onerror=alert(1)>"))
	assert.NotContains(t, buf.String(), "<img src=x")
	assert.Contains(t, buf.String(), "&lt;img src=x onerror=alert(1)&gt;")
}

func TestSubmissionError(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, SubmissionError(&buf))
	assert.Contains(t, buf.String(), "Something Went Wrong")
	assert.Contains(t, buf.String(), "<title>Submission Error - London Slush</title>")
}
