package cli

import (
	"context"
	"errors"
	"fmt"
	"log"
	"os"

	"github.com/cloudchest/cloudchest-cli/internal/client/api"
	"github.com/cloudchest/cloudchest-cli/internal/common"
)

// getSimpleText and getPassword are indirections used to facilitate testing.
// They point to interactive input helpers and can be swapped in tests.
var getSimpleText = GetSimpleText
var getPassword = GetPassword

// Register prompts the user for a username and password and attempts to
// create a new account.
func (a *App) Register(ctx context.Context) error {
	userName, err := getSimpleText(a.reader, "Enter username", os.Stdout)
	if err != nil {
		return err
	}

	password, err := getPassword(os.Stdout)
	if err != nil {
		return err
	}
	defer common.WipeByteArray(password)

	if err := a.auth.Register(ctx, userName, string(password)); err != nil {
		log.Printf("Registration unsuccessful: %s", err.Error())
		return err
	}

	fmt.Println("Success! You can now log in.")
	return nil
}

// Login prompts the user for credentials and tries to authenticate. When the
// server is unreachable the session stays logged out but the client drops to
// offline mode, where cached listings remain browsable.
func (a *App) Login(ctx context.Context) error {
	userName, err := getSimpleText(a.reader, "Enter username", os.Stdout)
	if err != nil {
		return err
	}

	password, err := getPassword(os.Stdout)
	if err != nil {
		return err
	}
	defer common.WipeByteArray(password)

	if err := a.auth.Login(ctx, userName, string(password)); err != nil {
		if errors.Is(err, api.ErrUnavailable) {
			log.Printf("Server unavailable, switching to offline browsing...")
			a.setMode(ModeOffline)
		} else {
			log.Printf("Login unsuccessful: %s", err.Error())
		}
		return err
	}

	log.Printf("Login successful")
	a.setMode(ModeOnline)
	a.stale.Store(true)
	return nil
}

// Logout ends the session and forgets the browsing state.
func (a *App) Logout(ctx context.Context) error {
	a.auth.Logout(ctx)
	a.currentFolder = RootFolderCode
	a.crumbs = nil
	a.lastFolders = nil
	a.lastFiles = nil
	fmt.Println("Logged out")
	return nil
}

// guardSession is the navigation guard: commands that need a valid session
// call it before touching the library. An expired or rejected session logs
// the user out so the prompt reflects reality.
func (a *App) guardSession(ctx context.Context) bool {
	if !a.isLoggedIn() {
		fmt.Println("Please login first")
		return false
	}
	if a.Mode == ModeOffline {
		// No way to validate against the server; allow cached browsing.
		return true
	}
	if !a.auth.CheckSession(ctx) {
		fmt.Println("Session expired, please login again")
		a.auth.Logout(ctx)
		return false
	}
	return true
}
