package api_test

import (
	"context"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-portfolio/pkg/testsupport"
)

func TestTrackPageViewRecordsPage(t *testing.T) {
	backend := testsupport.NewServer("admin@example.com", "secret")
	client, _ := newTestClient(t, backend)
	ctx := context.Background()

	if err := client.TrackPageView(ctx, "/"); err != nil {
		t.Fatalf("TrackPageView: %v", err)
	}
	if err := client.TrackPageView(ctx, "/projects"); err != nil {
		t.Fatalf("TrackPageView: %v", err)
	}
	if diff := cmp.Diff([]string{"/", "/projects"}, backend.Views()); diff != "" {
		t.Fatalf("recorded views mismatch (-want +got):\n%s", diff)
	}
}

func TestPageViewStats(t *testing.T) {
	backend := testsupport.NewServer("admin@example.com", "secret")
	client := loggedInClient(t, backend)
	ctx := context.Background()

	for _, page := range []string{"/", "/projects", "/contact"} {
		if err := client.TrackPageView(ctx, page); err != nil {
			t.Fatalf("TrackPageView(%q): %v", page, err)
		}
	}

	stats, err := client.PageViewStats(ctx)
	if err != nil {
		t.Fatalf("PageViewStats: %v", err)
	}
	if stats.TotalViews != 3 {
		t.Fatalf("total views = %d, want 3", stats.TotalViews)
	}
	if stats.Devices.Desktop != 3 || stats.Devices.Mobile != 0 {
		t.Fatalf("device split = %+v", stats.Devices)
	}
}

func TestUploadNamesFieldFile(t *testing.T) {
	backend := testsupport.NewServer("admin@example.com", "secret")
	client := loggedInClient(t, backend)

	result, err := client.Upload(context.Background(), "demo.mp4", strings.NewReader("video-bytes"))
	if err != nil {
		t.Fatalf("Upload: %v", err)
	}
	if !strings.HasSuffix(result.URL, "-demo.mp4") {
		t.Fatalf("unexpected upload url %q", result.URL)
	}
}
