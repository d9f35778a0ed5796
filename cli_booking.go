package main

import (
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/urfave/cli/v2"

	"raynott/booking"
	"raynott/commands"
	"raynott/dto"
	"raynott/errors"
	"raynott/models"
	"raynott/services"
	"raynott/services/notification"
)

func requireArg(c *cli.Context, name string) (string, error) {
	v := c.Args().First()
	if v == "" {
		return "", errors.NewAppError(errors.ErrCodeRequiredField, name+" is required", errors.ErrMissingRequired)
	}
	return v, nil
}

func stayFlags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{Name: "room", Required: true},
		&cli.StringFlag{Name: "check-in", Required: true, Usage: "YYYY-MM-DD"},
		&cli.StringFlag{Name: "check-out", Required: true, Usage: "YYYY-MM-DD"},
		&cli.IntFlag{Name: "guests", Value: 1},
	}
}

// resolve dựng intent cho phòng và chờ kết quả kiểm tra phòng trống
func resolve(c *cli.Context, a *app) (*booking.Resolver, error) {
	room, err := a.rooms.Get(c.Context, c.String("room"))
	if err != nil {
		return nil, err
	}
	r := booking.NewResolver(*room, a.rooms,
		booking.WithClock(a.clock),
		booking.WithDebounce(a.cfg.AvailabilityDebounce),
		booking.WithRequestTimeout(a.cfg.APITimeout),
		booking.WithLogger(a.log),
	)
	if err := r.SetGuests(c.Int("guests")); err != nil {
		r.Close()
		return nil, err
	}
	if v := r.SetRange(c.String("check-in"), c.String("check-out")); !v.Valid() {
		r.Close()
		return nil, errors.Validation(v.Reason)
	}
	if err := r.WaitSettled(c.Context); err != nil {
		r.Close()
		return nil, err
	}
	return r, nil
}

func printQuote(w io.Writer, r *booking.Resolver) {
	room := r.Room()
	p := r.PriceBreakdown()
	v := r.Validation()
	fmt.Fprintf(w, "%s, %s -> %s (%d nights, %d guests)\n", room.Title, v.CheckIn, v.CheckOut, p.Nights, r.Guests())
	fmt.Fprintf(w, "  %s x %d nights  %s\n", money(p.NightlyRate), p.Nights, money(p.Subtotal))
	fmt.Fprintf(w, "  Service fee       %s\n", money(p.ServiceFee))
	fmt.Fprintf(w, "  Taxes             %s\n", money(p.Taxes))
	fmt.Fprintf(w, "  Total             %s\n", money(p.Total))
}

func quoteCommand(withApp appAction) *cli.Command {
	return &cli.Command{
		Name:  "quote",
		Usage: "Kiểm tra ngày, phòng trống và báo giá",
		Flags: stayFlags(),
		Action: withApp(func(c *cli.Context, a *app) error {
			r, err := resolve(c, a)
			if err != nil {
				return a.fail(err)
			}
			defer r.Close()
			printQuote(c.App.Writer, r)
			notification.Present(a.notifier, r.Availability())
			return nil
		}),
	}
}

func bookCommand(withApp appAction) *cli.Command {
	return &cli.Command{
		Name:  "book",
		Usage: "Đặt phòng",
		Flags: stayFlags(),
		Action: withApp(func(c *cli.Context, a *app) error {
			r, err := resolve(c, a)
			if err != nil {
				return a.fail(err)
			}
			defer r.Close()
			printQuote(c.App.Writer, r)
			notification.Present(a.notifier, r.Availability())

			created, err := booking.NewFlow(a.store, a.bookings, a.log).Submit(c.Context, r)
			if err != nil {
				return a.fail(err)
			}
			notification.Present(a.notifier, created)
			return nil
		}),
	}
}

func bookingsCommand(withApp appAction) *cli.Command {
	return &cli.Command{
		Name:  "bookings",
		Usage: "Booking của tôi",
		Subcommands: []*cli.Command{
			{
				Name: "mine",
				Flags: []cli.Flag{
					&cli.StringFlag{Name: "filter", Value: string(dto.BookingFilterAll), Usage: "all|upcoming|past|cancelled"},
					&cli.StringFlag{Name: "search"},
				},
				Action: withApp(func(c *cli.Context, a *app) error {
					if !a.store.IsAuthenticated() {
						return a.fail(errors.AuthRequired("Please login to continue", "/my-bookings"))
					}
					all, err := a.bookings.Mine(c.Context)
					if err != nil {
						return a.fail(err)
					}
					now := a.clock.Now()
					counts := services.BookingCounts(all, now)
					fmt.Fprintf(c.App.Writer, "all=%d upcoming=%d past=%d cancelled=%d\n",
						counts[dto.BookingFilterAll], counts[dto.BookingFilterUpcoming], counts[dto.BookingFilterPast], counts[dto.BookingFilterCancelled])
					printBookings(c.App.Writer, services.FilterBookings(all, dto.BookingFilter(c.String("filter")), c.String("search"), now))
					return nil
				}),
			},
			{
				Name:      "cancel",
				ArgsUsage: "<booking-id>",
				Action: withApp(func(c *cli.Context, a *app) error {
					id, err := requireArg(c, "booking-id")
					if err != nil {
						return a.fail(err)
					}
					if !a.store.IsAuthenticated() {
						return a.fail(errors.AuthRequired("Please login to continue", "/my-bookings"))
					}
					mine, err := a.bookings.Mine(c.Context)
					if err != nil {
						return a.fail(err)
					}
					b, ok := findBooking(mine, id)
					if !ok {
						return a.fail(errors.NewAppError(errors.ErrCodeNotFound, "Booking not found", errors.ErrBookingNotFound))
					}
					if err := commands.NewCancelOwnBookingCommand(a.store, a.bookings, b, a.clock, a.log).Execute(c.Context); err != nil {
						return a.fail(err)
					}
					a.notifier.Success("Booking cancelled successfully")
					return nil
				}),
			},
		},
	}
}

func findBooking(bookings []models.Booking, id string) (models.Booking, bool) {
	for _, b := range bookings {
		if b.ID == id {
			return b, true
		}
	}
	return models.Booking{}, false
}

func printBookings(out io.Writer, bookings []models.Booking) {
	w := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tGUEST\tHOTEL\tROOM\tCHECK-IN\tCHECK-OUT\tNIGHTS\tSTATUS\tTOTAL")
	for _, b := range bookings {
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\t%s\t%d\t%s\t%s\n",
			b.ID, b.User.Label, b.Hotel.Label, b.Room.Label,
			b.Start().Format("2006-01-02"), b.End().Format("2006-01-02"), b.Nights(), b.Status, money(b.TotalPrice))
	}
	w.Flush()
}
