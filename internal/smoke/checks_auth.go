package smoke

import (
	"context"
	"fmt"
)

func (r *Runner) adminLogin(ctx context.Context) bool {
	r.rec.startSection("Admin Authentication")

	resp, err := r.client.Post(ctx, "auth/login", credentials{
		Email:    r.settings.AdminEmail,
		Password: r.settings.AdminPassword,
	}, "")
	var out authView
	if err != nil || !resp.Has("token") || resp.Decode(&out) != nil || out.Token == "" {
		return r.rec.record("Admin Login", false, describe(resp, err, "token"))
	}

	r.adminToken = out.Token
	return r.rec.record("Admin Login", true, "")
}

func (r *Runner) userRegistration(ctx context.Context) bool {
	r.rec.startSection("User Registration")

	suffix := r.suffix()
	resp, err := r.client.Post(ctx, "auth/register", credentials{
		Email:    fmt.Sprintf("testuser_%s@test.com", suffix),
		Username: fmt.Sprintf("TestUser_%s", suffix),
		Password: r.settings.UserPassword,
	}, "")
	var out authView
	if err != nil || !resp.Has("token", "user") || resp.Decode(&out) != nil || out.Token == "" {
		return r.rec.record("User Registration", false, describe(resp, err, "token", "user"))
	}
	if !out.User.Balance.Equal(r.settings.StartingBalance) {
		return r.rec.record("User Registration", false, fmt.Sprintf("expected starting balance %s, got %s",
			r.settings.StartingBalance.String(), out.User.Balance.String()))
	}

	r.userToken = out.Token
	r.userID = out.User.ID
	r.logger.Debug("registered smoke user", "user_id", r.userID)
	return r.rec.record(fmt.Sprintf("User Registration with %s ECU", r.settings.StartingBalance.String()), true, "")
}

func (r *Runner) userLogin(ctx context.Context) bool {
	r.rec.startSection("User Login")

	suffix := r.suffix()
	email := fmt.Sprintf("logintest_%s@test.com", suffix)
	resp, err := r.client.Post(ctx, "auth/register", credentials{
		Email:    email,
		Username: fmt.Sprintf("LoginTest_%s", suffix),
		Password: r.settings.UserPassword,
	}, "")
	if err != nil {
		return r.rec.record("User Login (Registration)", false, "Failed to register test user: "+describe(resp, err))
	}

	resp, err = r.client.Post(ctx, "auth/login", credentials{Email: email, Password: r.settings.UserPassword}, "")
	if err != nil || !resp.Has("token") {
		return r.rec.record("User Login", false, describe(resp, err, "token"))
	}
	return r.rec.record("User Login", true, "")
}
