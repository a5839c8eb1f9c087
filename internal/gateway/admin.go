// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package gateway

import "context"

// Admin monitoring and management operations. The TUI only calls these
// after the access guard has allowed the admin console; the backend is the
// actual authority.

// ListUsers returns every account for the user-management dashboard.
func (c *Client) ListUsers(ctx context.Context) ([]User, error) {
	var users []User
	if err := c.getJSON(ctx, "/users", &users); err != nil {
		return nil, err
	}
	return users, nil
}

// ApproveUser marks a pending account as approved.
func (c *Client) ApproveUser(ctx context.Context, userID string) error {
	return c.postJSON(ctx, "/users/approve", map[string]string{"user_id": userID}, nil)
}

// BlockUser blocks an account from signing in.
func (c *Client) BlockUser(ctx context.Context, userID string) error {
	return c.postJSON(ctx, "/users/block", map[string]string{"user_id": userID}, nil)
}

// UnblockUser lifts a block.
func (c *Client) UnblockUser(ctx context.Context, userID string) error {
	return c.postJSON(ctx, "/users/unblock", map[string]string{"user_id": userID}, nil)
}

// ListQueries returns the most recent queries across all users.
func (c *Client) ListQueries(ctx context.Context) ([]HistoryRecord, error) {
	var queries []HistoryRecord
	if err := c.getJSON(ctx, "/queries", &queries); err != nil {
		return nil, err
	}
	return queries, nil
}

// ListRules returns the sensitive-data detection rules.
func (c *Client) ListRules(ctx context.Context) ([]Rule, error) {
	var rules []Rule
	if err := c.getJSON(ctx, "/rules", &rules); err != nil {
		return nil, err
	}
	return rules, nil
}

// AddRule creates a detection rule (a regex pattern).
func (c *Client) AddRule(ctx context.Context, rule string) error {
	return c.postJSON(ctx, "/rules/add", map[string]string{"rule": rule}, nil)
}

// DeleteRule removes a detection rule by id.
func (c *Client) DeleteRule(ctx context.Context, ruleID string) error {
	return c.postJSON(ctx, "/rules/delete", map[string]string{"id": ruleID}, nil)
}

// ListLogs returns recent backend request logs.
func (c *Client) ListLogs(ctx context.Context) ([]APILog, error) {
	var logs []APILog
	if err := c.getJSON(ctx, "/logs", &logs); err != nil {
		return nil, err
	}
	return logs, nil
}

// ListSensitiveLogs returns the sensitive-data detection log.
func (c *Client) ListSensitiveLogs(ctx context.Context) ([]SensitiveLog, error) {
	var logs []SensitiveLog
	if err := c.getJSON(ctx, "/sensitive_logs", &logs); err != nil {
		return nil, err
	}
	return logs, nil
}

// Performance returns per-model classification metrics, keyed by model name.
func (c *Client) Performance(ctx context.Context) (map[string]ModelMetrics, error) {
	metrics := make(map[string]ModelMetrics)
	if err := c.getJSON(ctx, "/performance", &metrics); err != nil {
		return nil, err
	}
	return metrics, nil
}
