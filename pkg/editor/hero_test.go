package editor

import (
	"context"
	"errors"
	"io"
	"strings"
	"testing"

	"github.com/goliatone/go-portfolio/pkg/api"
)

type fakeHeroAPI struct {
	content api.HeroContent

	loadErr   error
	saveErr   error
	uploadErr error
	uploadURL string

	saves   []api.HeroContent
	uploads int
}

func (r *fakeHeroAPI) HeroContent(context.Context) (api.HeroContent, error) {
	if r.loadErr != nil {
		return api.HeroContent{}, r.loadErr
	}
	return r.content, nil
}

func (r *fakeHeroAPI) UpdateHeroContent(_ context.Context, hero api.HeroContent) error {
	r.saves = append(r.saves, hero)
	if r.saveErr != nil {
		return r.saveErr
	}
	r.content = hero
	return nil
}

func (r *fakeHeroAPI) UploadHeroImage(context.Context, string, io.Reader) (api.UploadResult, error) {
	r.uploads++
	if r.uploadErr != nil {
		return api.UploadResult{}, r.uploadErr
	}
	return api.UploadResult{URL: r.uploadURL}, nil
}

func TestHeroFormLoadEditSave(t *testing.T) {
	remote := &fakeHeroAPI{content: api.HeroContent{Name: "Jane", Title: "Hello"}}
	h := NewHeroForm(remote)
	ctx := context.Background()

	h.Load(ctx)
	if h.Content.Name != "Jane" {
		t.Fatalf("loaded name = %q", h.Content.Name)
	}

	h.Content.Title = "Building useful things"
	if !h.Save(ctx) {
		t.Fatalf("Save failed: banner=%q", h.Banner())
	}
	if remote.content.Title != "Building useful things" {
		t.Fatalf("persisted title = %q", remote.content.Title)
	}
}

func TestHeroFormSaveFailureShowsDetail(t *testing.T) {
	remote := &fakeHeroAPI{}
	remote.saveErr = &api.Error{Status: 422, Message: "The title field is required."}
	h := NewHeroForm(remote)
	ctx := context.Background()

	if h.Save(ctx) {
		t.Fatal("save should fail")
	}
	if h.Banner() != "The title field is required." {
		t.Fatalf("banner = %q", h.Banner())
	}

	remote.saveErr = errors.New("dial tcp: connection refused")
	h.Save(ctx)
	if h.Banner() != "Failed to save hero content" {
		t.Fatalf("banner = %q", h.Banner())
	}
}

func TestHeroFormUploadImage(t *testing.T) {
	remote := &fakeHeroAPI{uploadURL: "/uploads/portrait.jpg"}
	h := NewHeroForm(remote)
	ctx := context.Background()

	if !h.UploadImage(ctx, "portrait.jpg", strings.NewReader("jpeg")) {
		t.Fatalf("UploadImage failed: banner=%q", h.Banner())
	}
	if h.Content.ProfileImage != "/uploads/portrait.jpg" {
		t.Fatalf("profile image = %q", h.Content.ProfileImage)
	}

	remote.uploadErr = errors.New("boom")
	if h.UploadImage(ctx, "portrait.jpg", strings.NewReader("jpeg")) {
		t.Fatal("upload should fail")
	}
	if h.Banner() != "Upload failed" {
		t.Fatalf("banner = %q", h.Banner())
	}
	if h.Content.ProfileImage != "/uploads/portrait.jpg" {
		t.Fatal("failed upload must not clear the stored image")
	}
}

func TestHeroFormLoadFailure(t *testing.T) {
	remote := &fakeHeroAPI{loadErr: errors.New("boom")}
	h := NewHeroForm(remote)
	h.Load(context.Background())

	if h.Banner() != "Failed to load hero content" {
		t.Fatalf("banner = %q", h.Banner())
	}
}
