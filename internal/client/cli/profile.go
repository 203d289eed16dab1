package cli

import (
	"context"
	"fmt"
	"os"

	"github.com/avesnin/inkpress-cli/internal/client/guard"
	"github.com/avesnin/inkpress-cli/internal/client/models"
)

// Profile shows the signed-in user's own profile. Protected.
func (a *App) Profile(ctx context.Context) error {
	if !a.authorize(guard.RouteProfile) {
		return nil
	}

	u := a.sessions.Current().User
	printlnFn(fmt.Sprintf("%s <%s>", u.Username, u.Email))
	if u.Name != "" {
		printlnFn("Name:", u.Name)
	}
	if u.Bio != "" {
		printlnFn("Bio:", u.Bio)
	}
	if u.Avatar != "" {
		printlnFn("Avatar:", u.Avatar)
	}
	return nil
}

// EditProfile updates profile fields. Empty answers leave a field unchanged;
// untouched fields survive the round-trip to the backend.
func (a *App) EditProfile(ctx context.Context) error {
	if !a.authorize(guard.RouteEditProfile) {
		return nil
	}

	var upd models.UserUpdate
	if name, err := getSimpleText(a.reader, "Display name (empty to keep)", os.Stdout); err != nil {
		return err
	} else if name != "" {
		upd.Name = &name
	}
	if bio, err := getSimpleText(a.reader, "Bio (empty to keep)", os.Stdout); err != nil {
		return err
	} else if bio != "" {
		upd.Bio = &bio
	}
	if avatar, err := getSimpleText(a.reader, "Avatar URL (empty to keep)", os.Stdout); err != nil {
		return err
	} else if avatar != "" {
		upd.Avatar = &avatar
	}

	if err := a.sessions.UpdateProfile(ctx, upd); err != nil {
		printlnFn("Profile update failed:", err.Error())
		return err
	}

	printlnFn("Profile updated.")
	return nil
}
