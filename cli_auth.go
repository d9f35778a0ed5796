package main

import (
	"fmt"

	"github.com/urfave/cli/v2"

	"raynott/dto"
	"raynott/errors"
	"raynott/validator"
)

func loginCommand(withApp appAction) *cli.Command {
	return &cli.Command{
		Name:  "login",
		Usage: "Đăng nhập và lưu session",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "email", Required: true},
			&cli.StringFlag{Name: "password", Required: true, EnvVars: []string{"RAYNOTT_PASSWORD"}},
		},
		Action: withApp(func(c *cli.Context, a *app) error {
			in := dto.LoginInput{Email: c.String("email"), Password: c.String("password")}
			if err := validator.ValidateLogin(in); err != nil {
				return a.fail(err)
			}
			snap, err := a.store.Login(c.Context, in.Email, in.Password)
			if err != nil {
				return a.fail(err)
			}
			a.notifier.Success(fmt.Sprintf("Welcome back, %s", snap.User.Name))
			return nil
		}),
	}
}

func registerCommand(withApp appAction) *cli.Command {
	return &cli.Command{
		Name:  "register",
		Usage: "Tạo tài khoản mới",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "name", Required: true},
			&cli.StringFlag{Name: "email", Required: true},
			&cli.StringFlag{Name: "password", Required: true},
			&cli.StringFlag{Name: "confirm", Required: true, Usage: "nhập lại mật khẩu"},
		},
		Action: withApp(func(c *cli.Context, a *app) error {
			in := dto.RegisterInput{
				Name:            c.String("name"),
				Email:           c.String("email"),
				Password:        c.String("password"),
				ConfirmPassword: c.String("confirm"),
			}
			if err := validator.ValidateRegister(in); err != nil {
				return a.fail(err)
			}
			snap, err := a.store.Register(c.Context, in)
			if err != nil {
				return a.fail(err)
			}
			a.notifier.Success(fmt.Sprintf("Account created. Logged in as %s", snap.User.Email))
			return nil
		}),
	}
}

func logoutCommand(withApp appAction) *cli.Command {
	return &cli.Command{
		Name:  "logout",
		Usage: "Xoá session đã lưu",
		Action: withApp(func(c *cli.Context, a *app) error {
			a.store.Logout()
			a.notifier.Success("Logged out")
			return nil
		}),
	}
}

func whoamiCommand(withApp appAction) *cli.Command {
	return &cli.Command{
		Name:  "whoami",
		Usage: "In thông tin session hiện tại (không gọi mạng)",
		Action: withApp(func(c *cli.Context, a *app) error {
			snap := a.store.Current()
			if !snap.Authenticated() {
				fmt.Fprintln(c.App.Writer, "Not logged in")
				return nil
			}
			fmt.Fprintf(c.App.Writer, "%s <%s> role=%s id=%s\n", snap.User.Name, snap.User.Email, snap.User.Role, snap.User.ID)
			return nil
		}),
	}
}

func profileCommand(withApp appAction) *cli.Command {
	return &cli.Command{
		Name:  "profile",
		Usage: "Lấy profile từ server",
		Action: withApp(func(c *cli.Context, a *app) error {
			if !a.store.IsAuthenticated() {
				return a.fail(errors.AuthRequired("Please login to continue", "/profile"))
			}
			user, err := a.auth.Profile(c.Context)
			if err != nil {
				return a.fail(err)
			}
			fmt.Fprintf(c.App.Writer, "%s <%s> role=%s since %s\n", user.Name, user.Email, user.Role, user.CreatedAt)
			return nil
		}),
	}
}
