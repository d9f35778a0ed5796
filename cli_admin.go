package main

import (
	"fmt"
	"text/tabwriter"

	"github.com/urfave/cli/v2"

	"raynott/commands"
	"raynott/dto"
	"raynott/errors"
	"raynott/models"
	"raynott/services"
	"raynott/validator"
)

func adminCommand(withApp appAction) *cli.Command {
	return &cli.Command{
		Name:  "admin",
		Usage: "Quản trị: dashboard, khách sạn, phòng, booking, người dùng",
		Subcommands: []*cli.Command{
			{
				Name:   "dashboard",
				Action: withApp(adminDashboard),
			},
			adminHotelsCommand(withApp),
			adminRoomsCommand(withApp),
			adminBookingsCommand(withApp),
			adminUsersCommand(withApp),
		},
	}
}

func adminDashboard(c *cli.Context, a *app) error {
	dash := services.NewDashboardService(services.DashboardServiceOptions{
		Session:  a.store,
		Bookings: a.bookings,
		Users:    a.auth,
		Hotels:   a.hotels,
		Logger:   a.log,
	})
	stats, err := dash.Stats(c.Context)
	if err != nil {
		return a.fail(err)
	}
	w := tabwriter.NewWriter(c.App.Writer, 0, 4, 2, ' ', 0)
	fmt.Fprintf(w, "Total bookings\t%d\n", stats.TotalBookings)
	fmt.Fprintf(w, "  pending\t%d\n", stats.PendingBookings)
	fmt.Fprintf(w, "  confirmed\t%d\n", stats.ConfirmedBookings)
	fmt.Fprintf(w, "  cancelled\t%d\n", stats.CancelledBookings)
	fmt.Fprintf(w, "Users\t%d\n", stats.TotalUsers)
	fmt.Fprintf(w, "Hotels\t%d\n", stats.TotalHotels)
	fmt.Fprintf(w, "Revenue\t%s\n", money(stats.TotalRevenue))
	return w.Flush()
}

// adminOnly chạy fn khi session hiện tại là admin
func adminOnly(withApp appAction, returnPath string, fn func(*cli.Context, *app) error) cli.ActionFunc {
	return withApp(func(c *cli.Context, a *app) error {
		if err := services.RequireAdmin(a.store, returnPath); err != nil {
			return a.fail(err)
		}
		return fn(c, a)
	})
}

func hotelFlags(required bool) []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{Name: "name", Required: required},
		&cli.StringFlag{Name: "address", Required: required},
		&cli.StringFlag{Name: "city", Required: required},
		&cli.StringFlag{Name: "country"},
		&cli.StringFlag{Name: "description"},
		&cli.IntFlag{Name: "stars", Required: required},
		&cli.Float64Flag{Name: "price", Required: required, Usage: "giá mỗi đêm"},
		&cli.StringSliceFlag{Name: "amenity"},
		&cli.StringSliceFlag{Name: "image"},
	}
}

// hotelRequest ghi đè các flag đã đặt lên giá trị hiện có
func hotelRequest(c *cli.Context, req dto.HotelRequest) dto.HotelRequest {
	if c.IsSet("name") {
		req.Name = c.String("name")
	}
	if c.IsSet("address") {
		req.Address = c.String("address")
	}
	if c.IsSet("city") {
		req.City = c.String("city")
	}
	if c.IsSet("country") {
		req.Country = c.String("country")
	}
	if c.IsSet("description") {
		req.Description = c.String("description")
	}
	if c.IsSet("stars") {
		req.Stars = c.Int("stars")
	}
	if c.IsSet("price") {
		req.PricePerNight = c.Float64("price")
	}
	if c.IsSet("amenity") {
		req.Amenities = c.StringSlice("amenity")
	}
	if c.IsSet("image") {
		req.Images = c.StringSlice("image")
	}
	return req
}

func adminHotelsCommand(withApp appAction) *cli.Command {
	return &cli.Command{
		Name: "hotels",
		Subcommands: []*cli.Command{
			{
				Name:  "create",
				Flags: hotelFlags(true),
				Action: adminOnly(withApp, "/admin/hotels", func(c *cli.Context, a *app) error {
					req := hotelRequest(c, dto.HotelRequest{})
					if err := validator.ValidateHotel(&req); err != nil {
						return a.fail(err)
					}
					h, err := a.hotels.Create(c.Context, req)
					if err != nil {
						return a.fail(err)
					}
					a.notifier.Success(fmt.Sprintf("Hotel created successfully (%s)", h.ID))
					return nil
				}),
			},
			{
				Name:      "update",
				ArgsUsage: "<hotel-id>",
				Flags:     hotelFlags(false),
				Action: adminOnly(withApp, "/admin/hotels", func(c *cli.Context, a *app) error {
					id, err := requireArg(c, "hotel-id")
					if err != nil {
						return a.fail(err)
					}
					current, err := a.hotels.Get(c.Context, id)
					if err != nil {
						return a.fail(err)
					}
					req := hotelRequest(c, dto.HotelRequest{
						Name:          current.Name,
						Description:   current.Description,
						Address:       current.Address,
						City:          current.City,
						Country:       current.Country,
						Stars:         current.Stars,
						PricePerNight: current.PricePerNight,
						Amenities:     current.Amenities,
						Images:        current.Images,
					})
					if err := validator.ValidateHotel(&req); err != nil {
						return a.fail(err)
					}
					if _, err := a.hotels.Update(c.Context, id, req); err != nil {
						return a.fail(err)
					}
					a.notifier.Success("Hotel updated successfully")
					return nil
				}),
			},
			{
				Name:      "delete",
				ArgsUsage: "<hotel-id>",
				Action: withApp(func(c *cli.Context, a *app) error {
					id, err := requireArg(c, "hotel-id")
					if err != nil {
						return a.fail(err)
					}
					if err := commands.NewDeleteHotelCommand(a.store, a.hotels, id, a.log).Execute(c.Context); err != nil {
						return a.fail(err)
					}
					a.notifier.Success("Hotel deleted successfully")
					return nil
				}),
			},
		},
	}
}

func roomFlags(required bool) []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{Name: "hotel", Required: required},
		&cli.StringFlag{Name: "title", Required: required},
		&cli.StringFlag{Name: "description"},
		&cli.Float64Flag{Name: "price", Required: required},
		&cli.IntFlag{Name: "capacity", Value: 2},
		&cli.StringFlag{Name: "bed"},
		&cli.StringSliceFlag{Name: "amenity"},
		&cli.StringSliceFlag{Name: "image"},
	}
}

func roomRequest(c *cli.Context, req dto.RoomRequest) dto.RoomRequest {
	if c.IsSet("hotel") {
		req.Hotel = c.String("hotel")
	}
	if c.IsSet("title") {
		req.Title = c.String("title")
	}
	if c.IsSet("description") {
		req.Description = c.String("description")
	}
	if c.IsSet("price") {
		req.Price = c.Float64("price")
	}
	if c.IsSet("capacity") || req.Capacity == 0 {
		req.Capacity = c.Int("capacity")
	}
	if c.IsSet("bed") {
		req.BedType = c.String("bed")
	}
	if c.IsSet("amenity") {
		req.Amenities = c.StringSlice("amenity")
	}
	if c.IsSet("image") {
		req.Images = c.StringSlice("image")
	}
	return req
}

func adminRoomsCommand(withApp appAction) *cli.Command {
	return &cli.Command{
		Name: "rooms",
		Subcommands: []*cli.Command{
			{
				Name:  "create",
				Flags: roomFlags(true),
				Action: adminOnly(withApp, "/admin/rooms", func(c *cli.Context, a *app) error {
					req := roomRequest(c, dto.RoomRequest{})
					if err := validator.ValidateRoom(&req); err != nil {
						return a.fail(err)
					}
					r, err := a.rooms.Create(c.Context, req)
					if err != nil {
						return a.fail(err)
					}
					a.notifier.Success(fmt.Sprintf("Room created successfully (%s)", r.ID))
					return nil
				}),
			},
			{
				Name:      "update",
				ArgsUsage: "<room-id>",
				Flags:     roomFlags(false),
				Action: adminOnly(withApp, "/admin/rooms", func(c *cli.Context, a *app) error {
					id, err := requireArg(c, "room-id")
					if err != nil {
						return a.fail(err)
					}
					current, err := a.rooms.Get(c.Context, id)
					if err != nil {
						return a.fail(err)
					}
					req := roomRequest(c, dto.RoomRequest{
						Hotel:       current.HotelID(),
						Title:       current.Title,
						Description: current.Description,
						Price:       current.Price,
						Capacity:    current.Capacity,
						BedType:     current.BedType,
						Amenities:   current.Amenities,
						Images:      current.Images,
					})
					if err := validator.ValidateRoom(&req); err != nil {
						return a.fail(err)
					}
					if _, err := a.rooms.Update(c.Context, id, req); err != nil {
						return a.fail(err)
					}
					a.notifier.Success("Room updated successfully")
					return nil
				}),
			},
			{
				Name:      "delete",
				ArgsUsage: "<room-id>",
				Action: withApp(func(c *cli.Context, a *app) error {
					id, err := requireArg(c, "room-id")
					if err != nil {
						return a.fail(err)
					}
					if err := commands.NewDeleteRoomCommand(a.store, a.rooms, id, a.log).Execute(c.Context); err != nil {
						return a.fail(err)
					}
					a.notifier.Success("Room deleted successfully")
					return nil
				}),
			},
		},
	}
}

// bookingByID tìm booking trong danh sách của admin
func bookingByID(c *cli.Context, a *app, id string) (models.Booking, error) {
	all, err := a.bookings.All(c.Context)
	if err != nil {
		return models.Booking{}, err
	}
	b, ok := findBooking(all, id)
	if !ok {
		return models.Booking{}, errors.NewAppError(errors.ErrCodeNotFound, "Booking not found", errors.ErrBookingNotFound)
	}
	return b, nil
}

func adminBookingsCommand(withApp appAction) *cli.Command {
	return &cli.Command{
		Name: "bookings",
		Subcommands: []*cli.Command{
			{
				Name: "list",
				Flags: []cli.Flag{
					&cli.StringFlag{Name: "filter", Value: string(dto.BookingFilterAll), Usage: "all|upcoming|past|cancelled|pending|confirmed"},
					&cli.StringFlag{Name: "search", Usage: "tên khách, khách sạn, phòng hoặc mã booking"},
				},
				Action: adminOnly(withApp, "/admin/bookings", func(c *cli.Context, a *app) error {
					all, err := a.bookings.All(c.Context)
					if err != nil {
						return a.fail(err)
					}
					printBookings(c.App.Writer, services.FilterBookings(all, dto.BookingFilter(c.String("filter")), c.String("search"), a.clock.Now()))
					return nil
				}),
			},
			{
				Name:      "status",
				ArgsUsage: "<booking-id> <pending|confirmed|cancelled>",
				Action: adminOnly(withApp, "/admin/bookings", func(c *cli.Context, a *app) error {
					id, status := c.Args().Get(0), c.Args().Get(1)
					if id == "" {
						return a.fail(errors.NewAppError(errors.ErrCodeRequiredField, "booking-id is required", errors.ErrMissingRequired))
					}
					if err := validator.ValidateStatus(status); err != nil {
						return a.fail(err)
					}
					b, err := bookingByID(c, a, id)
					if err != nil {
						return a.fail(err)
					}
					cmd := commands.NewUpdateBookingStatusCommand(a.store, a.bookings, b, status, a.log)
					if err := cmd.Execute(c.Context); err != nil {
						return a.fail(err)
					}
					a.notifier.Success(fmt.Sprintf("Booking %s", cmd.Result.Status))
					return nil
				}),
			},
			{
				Name:      "cancel",
				ArgsUsage: "<booking-id>",
				Action: adminOnly(withApp, "/admin/bookings", func(c *cli.Context, a *app) error {
					id, err := requireArg(c, "booking-id")
					if err != nil {
						return a.fail(err)
					}
					b, err := bookingByID(c, a, id)
					if err != nil {
						return a.fail(err)
					}
					if err := commands.NewCancelBookingCommand(a.store, a.bookings, b, a.clock, a.log).Execute(c.Context); err != nil {
						return a.fail(err)
					}
					a.notifier.Success("Booking cancelled successfully")
					return nil
				}),
			},
		},
	}
}

func adminUsersCommand(withApp appAction) *cli.Command {
	return &cli.Command{
		Name: "users",
		Subcommands: []*cli.Command{
			{
				Name: "list",
				Action: adminOnly(withApp, "/admin/users", func(c *cli.Context, a *app) error {
					users, err := a.auth.ListUsers(c.Context)
					if err != nil {
						return a.fail(err)
					}
					w := tabwriter.NewWriter(c.App.Writer, 0, 4, 2, ' ', 0)
					fmt.Fprintln(w, "ID\tNAME\tEMAIL\tROLE")
					for _, u := range users {
						fmt.Fprintf(w, "%s\t%s\t%s\t%s\n", u.ID, u.Name, u.Email, u.Role)
					}
					return w.Flush()
				}),
			},
			{
				Name:      "update",
				ArgsUsage: "<user-id>",
				Flags: []cli.Flag{
					&cli.StringFlag{Name: "name"},
					&cli.StringFlag{Name: "email"},
					&cli.StringFlag{Name: "role", Usage: "user|admin"},
				},
				Action: adminOnly(withApp, "/admin/users", func(c *cli.Context, a *app) error {
					id, err := requireArg(c, "user-id")
					if err != nil {
						return a.fail(err)
					}
					req := dto.UpdateUserRequest{Name: c.String("name"), Email: c.String("email"), Role: c.String("role")}
					if req.Email != "" && !validator.IsValidEmail(req.Email) {
						return a.fail(errors.NewAppError(errors.ErrCodeInvalidEmail, "Invalid email address", errors.ErrInvalidFormat))
					}
					u, err := a.auth.UpdateUser(c.Context, id, req)
					if err != nil {
						return a.fail(err)
					}
					a.notifier.Success(fmt.Sprintf("User %s updated (role=%s)", u.Email, u.Role))
					return nil
				}),
			},
			{
				Name:      "delete",
				ArgsUsage: "<user-id>",
				Action: withApp(func(c *cli.Context, a *app) error {
					id, err := requireArg(c, "user-id")
					if err != nil {
						return a.fail(err)
					}
					if err := commands.NewDeleteUserCommand(a.store, a.auth, id, a.log).Execute(c.Context); err != nil {
						return a.fail(err)
					}
					a.notifier.Success("User deleted successfully")
					return nil
				}),
			},
			{
				Name: "create-admin",
				Flags: []cli.Flag{
					&cli.StringFlag{Name: "name", Required: true},
					&cli.StringFlag{Name: "email", Required: true},
					&cli.StringFlag{Name: "password", Required: true},
				},
				Action: adminOnly(withApp, "/admin/users", func(c *cli.Context, a *app) error {
					in := dto.CreateAdminInput{Name: c.String("name"), Email: c.String("email"), Password: c.String("password")}
					if !validator.IsValidEmail(in.Email) {
						return a.fail(errors.NewAppError(errors.ErrCodeInvalidEmail, "Invalid email address", errors.ErrInvalidFormat))
					}
					u, err := a.auth.CreateAdmin(c.Context, in)
					if err != nil {
						return a.fail(err)
					}
					a.notifier.Success(fmt.Sprintf("Admin %s created", u.Email))
					return nil
				}),
			},
		},
	}
}
