package authwall

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestInferProvider(t *testing.T) {
	tests := []struct {
		url      string
		expected Provider
	}{
		{"https://acme.wd5.myworkdayjobs.com/en-US/careers", ProviderWorkday},
		{"https://acme.taleo.net/careersection/2/jobdetail.ftl", ProviderTaleo},
		{"https://careers-acme.icims.com/jobs/1234/job", ProviderICIMS},
		{"https://jobs.lever.co/acme/abc", ProviderLever},
		{"https://boards.greenhouse.io/acme/jobs/1", ProviderGreenhouse},
		{"https://jobs.ashbyhq.com/acme/abc", ProviderAshby},
		{"https://careers.example.com/apply/123", ProviderGeneric},
		{"", ProviderGeneric},
	}

	for _, tt := range tests {
		t.Run(tt.url, func(t *testing.T) {
			assert.Equal(t, tt.expected, InferProvider(tt.url))
		})
	}
}
