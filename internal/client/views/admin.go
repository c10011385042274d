package views

import (
	"context"
	"errors"
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/dmitrijs2005/communityhub/internal/client/client"
	"github.com/dmitrijs2005/communityhub/internal/client/models"
	"github.com/dmitrijs2005/communityhub/internal/client/notify"
	"github.com/dmitrijs2005/communityhub/internal/common"
)

type AdminUsers struct {
	deps  Deps
	users []models.AdminUser
	err   string
}

func NewAdminUsers(d Deps) *AdminUsers {
	return &AdminUsers{deps: d}
}

// Load fetches the user list. A rejected credential sends the user to log
// in; a non-admin credential sends them home.
func (v *AdminUsers) Load(ctx context.Context) (Nav, error) {
	if v.deps.Session.AuthHeader() == "" {
		v.err = "Authentication required."
		return "/login", nil
	}

	users, err := v.deps.Admin.ListUsers(ctx)
	if err != nil {
		v.err = v.deps.fail(err, "Failed to fetch users.")
		switch {
		case errors.Is(err, client.ErrUnauthorized):
			return "/login", err
		case errors.Is(err, client.ErrForbidden):
			return "/", err
		}
		return Stay, err
	}

	v.err = ""
	v.users = users
	return Stay, nil
}

func (v *AdminUsers) Users() []models.AdminUser {
	return v.users
}

// deletable reports whether u may be removed from this screen by the
// current user.
func (v *AdminUsers) deletable(u models.AdminUser) bool {
	if u.Username == common.ReservedAdminName {
		return false
	}
	me := v.deps.Session.User()
	return me == nil || me.Username != u.Username
}

// DeleteUser removes a listed user and reloads the list. The built-in admin
// and the current user are refused without a request.
func (v *AdminUsers) DeleteUser(ctx context.Context, userID int64) error {
	var target *models.AdminUser
	for i := range v.users {
		if v.users[i].ID == userID {
			target = &v.users[i]
			break
		}
	}
	if target == nil {
		v.deps.Notify.Emit(notify.Error, fmt.Sprintf("User #%d not found.", userID))
		return fmt.Errorf("user %d: %w", userID, ErrInvalidInput)
	}

	if target.Username == common.ReservedAdminName {
		v.deps.Notify.Emit(notify.Error, "The 'admin' account cannot be deleted.")
		return ErrPermission
	}
	if me := v.deps.Session.User(); me != nil && me.Username == target.Username {
		v.deps.Notify.Emit(notify.Error, "You cannot delete your own account from the admin panel.")
		return ErrPermission
	}

	name := target.Username
	if err := v.deps.Admin.DeleteUser(ctx, userID); err != nil {
		v.err = v.deps.fail(err, fmt.Sprintf("Failed to delete user %s.", name))
		return err
	}
	v.deps.Notify.Emit(notify.Success, fmt.Sprintf("User '%s' deleted successfully.", name))

	_, err := v.Load(ctx)
	return err
}

func (v *AdminUsers) Render(w io.Writer) {
	fmt.Fprintln(w, "Manage Users")
	fmt.Fprintln(w)

	if v.err != "" {
		fmt.Fprintln(w, v.err)
		return
	}
	if len(v.users) == 0 {
		fmt.Fprintln(w, "No users found.")
		return
	}

	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tUSERNAME\tROLE\tACTIONS")
	for _, u := range v.users {
		role := "User"
		if u.IsAdmin {
			role = "Admin"
		}
		action := "N/A"
		if v.deletable(u) {
			action = fmt.Sprintf("deluser %d", u.ID)
		}
		fmt.Fprintf(tw, "%d\t%s\t%s\t%s\n", u.ID, u.Username, role, action)
	}
	_ = tw.Flush()
}
