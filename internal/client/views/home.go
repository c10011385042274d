package views

import (
	"fmt"
	"io"

	"github.com/dmitrijs2005/communityhub/internal/client/models"
)

func RenderNavbar(w io.Writer, user *models.User) {
	fmt.Fprint(w, "[CommunityHub]  Free Board (/board/free)  Notice Board (/board/notice)  |  ")
	if user == nil {
		fmt.Fprintln(w, "Login (/login)  Sign Up (/signup)")
		return
	}
	fmt.Fprintf(w, "Welcome, %s!", user.Username)
	if user.IsAdmin {
		fmt.Fprint(w, "  Admin (/admin/users)")
	}
	fmt.Fprintln(w, "  My Page (/my-page)  Logout")
}

func RenderHome(w io.Writer, user *models.User) {
	fmt.Fprintln(w, "Welcome to CommunityHub!")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Your one-stop platform for discussions, announcements, and community engagement.")
	fmt.Fprintln(w, "Explore our boards, share your thoughts, and connect with others.")
	fmt.Fprintln(w)
	if user != nil {
		fmt.Fprintf(w, "Hello, %s! What would you like to do today?\n", user.Username)
	} else {
		fmt.Fprintln(w, "Join the conversation! Sign up (/signup) or Log in (/login) to get started.")
	}
	fmt.Fprintln(w)
	fmt.Fprintf(w, "%s: Open discussions on any topic. Share your ideas, ask questions, or just chat!\n", models.BoardFree.Title())
	fmt.Fprintf(w, "  Go to %s (/board/%s)\n", models.BoardFree.Title(), models.BoardFree)
	fmt.Fprintf(w, "%s: Stay updated with official announcements, news, and important information.\n", models.BoardNotice.Title())
	fmt.Fprintf(w, "  Go to %s (/board/%s)\n", models.BoardNotice.Title(), models.BoardNotice)
}
