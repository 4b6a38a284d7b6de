package api

import (
	"context"
	"net/http"
)

// DeviceSplit partitions page views by device class.
type DeviceSplit struct {
	Mobile  int `json:"mobile"`
	Desktop int `json:"desktop"`
}

// PeakHour is one bucket of the hour-of-day histogram.
type PeakHour struct {
	Hour  int `json:"hour"`
	Count int `json:"count"`
}

// WeeklyComparison contrasts the rolling week with the one before it.
// Change values are percentages; negative means a drop.
type WeeklyComparison struct {
	ThisWeekViews    int `json:"this_week_views"`
	LastWeekViews    int `json:"last_week_views"`
	ViewsChange      int `json:"views_change"`
	ThisWeekVisitors int `json:"this_week_visitors"`
	LastWeekVisitors int `json:"last_week_visitors"`
	VisitorsChange   int `json:"visitors_change"`
}

// RecentView is one row of the live-visit feed.
type RecentView struct {
	Page     string `json:"page"`
	Device   string `json:"device,omitempty"`
	ViewedAt string `json:"viewed_at"`
}

// PageViewStats is the analytics summary shown on the admin dashboard.
type PageViewStats struct {
	TotalViews       int              `json:"total_views"`
	UniqueVisitors   int              `json:"unique_visitors"`
	Devices          DeviceSplit      `json:"devices"`
	PeakHours        []PeakHour       `json:"peak_hours"`
	WeeklyComparison WeeklyComparison `json:"weekly_comparison"`
	RecentViews      []RecentView     `json:"recent_views"`
}

type pageViewRequest struct {
	Page string `json:"page"`
}

// TrackPageView records one public page view. Callers on the public site
// treat failures as non-events.
func (c *Client) TrackPageView(ctx context.Context, page string) error {
	return c.do(ctx, http.MethodPost, "/page-views", pageViewRequest{Page: page}, nil)
}

// PageViewStats fetches the analytics summary.
func (c *Client) PageViewStats(ctx context.Context) (PageViewStats, error) {
	var stats PageViewStats
	if err := c.do(ctx, http.MethodGet, "/page-views/stats", nil, &stats); err != nil {
		return PageViewStats{}, err
	}
	return stats, nil
}
