// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package httputil

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pdiddy/arxiv-browser/pkg/types"
)

func TestNewGetRequest(t *testing.T) {
	req, err := NewGetRequest(context.Background(), types.HTTPConfig{UserAgent: "custom/1.0"}, "http://example.com/x")
	require.NoError(t, err)
	assert.Equal(t, "custom/1.0", req.Header.Get("User-Agent"))

	req, err = NewGetRequest(context.Background(), types.HTTPConfig{}, "http://example.com/x")
	require.NoError(t, err)
	assert.Equal(t, DefaultUserAgent, req.Header.Get("User-Agent"))
}

func TestPacerZeroIntervalNeverWaits(t *testing.T) {
	p := NewPacer(0)
	start := time.Now()
	for range 10 {
		require.NoError(t, p.Wait(context.Background()))
	}
	assert.Less(t, time.Since(start), 100*time.Millisecond)
}

func TestPacerEnforcesInterval(t *testing.T) {
	interval := 30 * time.Millisecond
	p := NewPacer(interval)

	start := time.Now()
	require.NoError(t, p.Wait(context.Background())) // first passes immediately
	require.NoError(t, p.Wait(context.Background()))
	require.NoError(t, p.Wait(context.Background()))
	elapsed := time.Since(start)

	assert.GreaterOrEqual(t, elapsed, 2*interval-5*time.Millisecond)
}

func TestPacerCancelled(t *testing.T) {
	p := NewPacer(time.Hour)
	require.NoError(t, p.Wait(context.Background())) // consume the burst

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	assert.Error(t, p.Wait(ctx))
}

func TestNilPacer(t *testing.T) {
	var p *Pacer
	assert.NoError(t, p.Wait(context.Background()))
}

func TestNewClientTimeout(t *testing.T) {
	c := NewClient(types.HTTPConfig{Timeout: 5 * time.Second})
	assert.Equal(t, 5*time.Second, c.Timeout)
}
