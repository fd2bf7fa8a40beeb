package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"text/tabwriter"
	"time"

	"user-records/internal/model"
	"user-records/internal/ui"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"
	"go.uber.org/zap"
)

const usage = "usage: client [--api URL] [--timeout D] <list|search|create|update|delete> [args]"

var (
	newLogger = func() (*zap.Logger, error) { return zap.NewDevelopment() }
	readFile  = os.ReadFile
)

// settings 是 client 的連線設定，來源依序為 flag、環境變數、預設值
type settings struct {
	APIBaseURL string        `mapstructure:"api"`
	Timeout    time.Duration `mapstructure:"timeout"`
}

func loadSettings(args []string) (settings, []string, error) {
	fs := pflag.NewFlagSet("client", pflag.ContinueOnError)
	fs.SetInterspersed(false)
	fs.String("api", "http://localhost:3001", "API base URL (env API_BASE_URL)")
	fs.Duration("timeout", 10*time.Second, "HTTP timeout (env API_TIMEOUT)")
	if err := fs.Parse(args); err != nil {
		return settings{}, nil, err
	}

	v := viper.New()
	if err := v.BindPFlags(fs); err != nil {
		return settings{}, nil, err
	}
	_ = v.BindEnv("api", "API_BASE_URL")
	_ = v.BindEnv("timeout", "API_TIMEOUT")

	var s settings
	if err := v.Unmarshal(&s); err != nil {
		return settings{}, nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}
	return s, fs.Args(), nil
}

// alertWriter 把驗證訊息印到 stderr
type alertWriter struct{ w io.Writer }

func (a alertWriter) Alert(msg string) { fmt.Fprintln(a.w, "alert:", msg) }

func run(ctx context.Context, args []string, stdout, stderr io.Writer) error {
	cfg, rest, err := loadSettings(args)
	if err != nil {
		return err
	}
	if len(rest) == 0 {
		return errors.New(usage)
	}

	log, err := newLogger()
	if err != nil {
		return err
	}
	defer func() { _ = log.Sync() }()

	app := ui.NewApp(ui.NewClient(cfg.APIBaseURL, cfg.Timeout), alertWriter{stderr}, log)
	if err := app.Load(ctx); err != nil {
		return fmt.Errorf("load users: %w", err)
	}

	cmd, cmdArgs := rest[0], rest[1:]
	switch cmd {
	case "list":
		printUsers(stdout, app.State().Visible())
		return nil

	case "search":
		if err := app.Dispatch(ctx, ui.SearchChanged{Query: strings.Join(cmdArgs, " ")}); err != nil {
			return err
		}
		printUsers(stdout, app.State().Visible())
		return nil

	case "create":
		if err := fillForm(ctx, app, cmdArgs); err != nil {
			return err
		}
		if err := app.Dispatch(ctx, ui.Submit{}); err != nil {
			return err
		}
		printUsers(stdout, app.State().Users)
		return nil

	case "update":
		if len(cmdArgs) == 0 {
			return errors.New("update: missing id")
		}
		u, err := findUser(app.State().Users, cmdArgs[0])
		if err != nil {
			return err
		}
		if err := app.Dispatch(ctx, ui.EditSelected{User: u}); err != nil {
			return err
		}
		if err := fillForm(ctx, app, cmdArgs[1:]); err != nil {
			return err
		}
		if err := app.Dispatch(ctx, ui.Submit{}); err != nil {
			return err
		}
		printUsers(stdout, app.State().Users)
		return nil

	case "delete":
		if len(cmdArgs) == 0 {
			return errors.New("delete: missing id")
		}
		id, err := strconv.Atoi(cmdArgs[0])
		if err != nil {
			return fmt.Errorf("delete: invalid id %q", cmdArgs[0])
		}
		if err := app.Dispatch(ctx, ui.Delete{ID: id}); err != nil {
			return err
		}
		fmt.Fprintln(stdout, "User deleted successfully")
		return nil
	}
	return fmt.Errorf("unknown command %q\n%s", cmd, usage)
}

// formFlags 對應 CLI flag 與表單欄位
var formFlags = []struct{ name, field, usage string }{
	{"first", ui.FieldFirstName, "first name"},
	{"last", ui.FieldLastName, "last name"},
	{"email", ui.FieldEmail, "email address"},
	{"phone", ui.FieldPhone, "10-digit phone number"},
	{"dob", ui.FieldDateOfBirth, "date of birth (YYYY-MM-DD)"},
}

// fillForm 解析欄位 flag，只對有指定的欄位送出 InputChanged
func fillForm(ctx context.Context, app *ui.App, args []string) error {
	fs := pflag.NewFlagSet("form", pflag.ContinueOnError)
	vals := make([]*string, len(formFlags))
	for i, f := range formFlags {
		vals[i] = fs.String(f.name, "", f.usage)
	}
	image := fs.String("image", "", "path of a profile image to upload")
	if err := fs.Parse(args); err != nil {
		return err
	}

	for i, f := range formFlags {
		if !fs.Changed(f.name) {
			continue
		}
		if err := app.Dispatch(ctx, ui.InputChanged{Field: f.field, Value: *vals[i]}); err != nil {
			return err
		}
	}

	if *image == "" {
		return nil
	}
	data, err := readFile(*image)
	if err != nil {
		return fmt.Errorf("read image: %w", err)
	}
	return app.Dispatch(ctx, ui.FileChosen{File: &ui.File{Name: filepath.Base(*image), Data: data}})
}

func findUser(users []model.User, arg string) (model.User, error) {
	id, err := strconv.Atoi(arg)
	if err != nil {
		return model.User{}, fmt.Errorf("invalid id %q", arg)
	}
	for _, u := range users {
		if u.ID == id {
			return u, nil
		}
	}
	return model.User{}, fmt.Errorf("user %d not found", id)
}

func printUsers(w io.Writer, users []model.User) {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tNAME\tEMAIL\tPHONE\tDOB\tIMAGE")
	for _, u := range users {
		img := "-"
		if u.ProfileImage != nil {
			img = *u.ProfileImage
		}
		fmt.Fprintf(tw, "%d\t%s\t%s\t%s\t%s\t%s\n", u.ID, u.FullName(), u.Email, u.Phone, u.DateOfBirth, img)
	}
	_ = tw.Flush()
}
