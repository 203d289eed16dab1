package cli

import (
	"context"
	"fmt"
	"os"
)

// Register prompts for a username, email, and password and creates an
// account. A successful registration runs the full login flow with the same
// credentials, so the user ends up signed in.
func (a *App) Register(ctx context.Context) error {
	username, err := getSimpleText(a.reader, "Choose a username", os.Stdout)
	if err != nil {
		return err
	}
	email, err := getSimpleText(a.reader, "Enter your email", os.Stdout)
	if err != nil {
		return err
	}
	password, err := getPassword(os.Stdout)
	if err != nil {
		return err
	}

	if err := a.sessions.Register(ctx, username, email, password); err != nil {
		printlnFn("Registration failed:", err.Error())
		return err
	}

	printlnFn(fmt.Sprintf("Welcome, %s! Your account is ready and you are signed in.", a.status()))
	a.afterLogin(ctx)
	return nil
}

// Login prompts for credentials and authenticates. After a successful
// sign-in, a pending protected command (recorded by the guard when access
// was denied) is resumed.
func (a *App) Login(ctx context.Context) error {
	username, err := getSimpleText(a.reader, "Enter username", os.Stdout)
	if err != nil {
		return err
	}
	password, err := getPassword(os.Stdout)
	if err != nil {
		return err
	}

	if err := a.sessions.Login(ctx, username, password); err != nil {
		printlnFn("Login failed:", err.Error())
		return err
	}

	printlnFn(fmt.Sprintf("Welcome back, %s!", a.status()))
	a.afterLogin(ctx)
	return nil
}

// afterLogin resumes the route the guard recorded before redirecting to
// login, if any.
func (a *App) afterLogin(ctx context.Context) {
	route, ok := a.guard.TakeResume()
	if !ok {
		return
	}
	printlnFn("Returning to", string(route))
	a.dispatchRoute(ctx, route)
}

// Logout clears the session. Safe to run when already signed out.
func (a *App) Logout(ctx context.Context) error {
	a.sessions.Logout(ctx)
	printlnFn("You are signed out.")
	return nil
}

// Whoami prints the current identity, or says the session is anonymous.
func (a *App) Whoami(ctx context.Context) error {
	s := a.sessions.Current()
	if s.User == nil {
		printlnFn("Not signed in.")
		return nil
	}
	printlnFn(fmt.Sprintf("%s <%s>", s.User.Username, s.User.Email))
	return nil
}
