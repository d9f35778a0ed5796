package main

import (
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"github.com/urfave/cli/v2"

	"raynott/dto"
	"raynott/models"
	"raynott/services"
)

func hotelsCommand(withApp appAction) *cli.Command {
	return &cli.Command{
		Name:  "hotels",
		Usage: "Danh sách, chi tiết và tìm kiếm khách sạn",
		Subcommands: []*cli.Command{
			{
				Name:  "list",
				Usage: "Liệt kê khách sạn; bộ lọc được nhớ 30 phút",
				Flags: []cli.Flag{
					&cli.StringFlag{Name: "name"},
					&cli.StringFlag{Name: "city"},
					&cli.StringFlag{Name: "country"},
					&cli.IntFlag{Name: "min-stars"},
					&cli.Float64Flag{Name: "price-min"},
					&cli.Float64Flag{Name: "price-max"},
					&cli.StringSliceFlag{Name: "amenity"},
					&cli.BoolFlag{Name: "reset", Usage: "bỏ bộ lọc đã nhớ"},
				},
				Action: withApp(listHotels),
			},
			{
				Name:      "show",
				Usage:     "Chi tiết khách sạn và các phòng",
				ArgsUsage: "<hotel-id>",
				Action: withApp(func(c *cli.Context, a *app) error {
					id, err := requireArg(c, "hotel-id")
					if err != nil {
						return a.fail(err)
					}
					h, err := a.hotels.Get(c.Context, id)
					if err != nil {
						return a.fail(err)
					}
					printHotel(c.App.Writer, *h)
					return nil
				}),
			},
			{
				Name:      "search",
				Usage:     "Tìm gần đúng theo tên, thành phố, số sao, tiện nghi",
				ArgsUsage: "<query>",
				Action: withApp(func(c *cli.Context, a *app) error {
					query := strings.Join(c.Args().Slice(), " ")
					hotels, err := a.hotels.List(c.Context)
					if err != nil {
						return a.fail(err)
					}
					results := services.SearchHotels(hotels, query)
					if len(results) == 0 {
						a.notifier.Warn("No hotels match your search")
						return nil
					}
					w := tabwriter.NewWriter(c.App.Writer, 0, 4, 2, ' ', 0)
					fmt.Fprintln(w, "SCORE\tID\tNAME\tCITY\tSTARS")
					for _, r := range results {
						fmt.Fprintf(w, "%d\t%s\t%s\t%s\t%d\n", r.Score, r.Hotel.ID, r.Hotel.Name, r.Hotel.City, r.Hotel.Stars)
					}
					return w.Flush()
				}),
			},
		},
	}
}

func listHotels(c *cli.Context, a *app) error {
	filters := &dto.SearchFilters{
		Name:      c.String("name"),
		City:      c.String("city"),
		Country:   c.String("country"),
		Amenities: c.StringSlice("amenity"),
	}
	if c.IsSet("min-stars") {
		v := c.Int("min-stars")
		filters.MinStars = &v
	}
	if c.IsSet("price-min") {
		v := c.Float64("price-min")
		filters.PriceMin = &v
	}
	if c.IsSet("price-max") {
		v := c.Float64("price-max")
		filters.PriceMax = &v
	}

	if a.cache != nil {
		profile := a.cfg.SessionProfile
		if c.Bool("reset") {
			if err := services.ClearLastFilters(c.Context, a.cache, profile); err != nil {
				a.log.Warn("Không xoá được bộ lọc đã nhớ: %v", err)
			}
		} else if last, err := services.GetLastFilters(c.Context, a.cache, profile); err != nil {
			a.log.Warn("Không đọc được bộ lọc đã nhớ: %v", err)
		} else {
			filters = services.MergeFilters(last, filters)
		}
		if err := services.SaveLastFilters(c.Context, a.cache, profile, filters); err != nil {
			a.log.Warn("Không lưu được bộ lọc: %v", err)
		}
	}

	hotels, err := a.hotels.List(c.Context)
	if err != nil {
		return a.fail(err)
	}
	hotels = services.ApplyFilters(hotels, filters)
	if len(hotels) == 0 {
		a.notifier.Warn("No hotels found")
		return nil
	}

	w := tabwriter.NewWriter(c.App.Writer, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tNAME\tCITY\tSTARS\tFROM")
	for _, h := range hotels {
		fmt.Fprintf(w, "%s\t%s\t%s\t%d\t%s\n", h.ID, h.Name, h.City, h.Stars, money(h.PricePerNight))
	}
	return w.Flush()
}

func roomsCommand(withApp appAction) *cli.Command {
	return &cli.Command{
		Name:  "rooms",
		Usage: "Danh sách và chi tiết phòng",
		Subcommands: []*cli.Command{
			{
				Name:  "list",
				Flags: []cli.Flag{&cli.StringFlag{Name: "hotel", Usage: "chỉ phòng của khách sạn này"}},
				Action: withApp(func(c *cli.Context, a *app) error {
					var (
						rooms []models.Room
						err   error
					)
					if hotelID := c.String("hotel"); hotelID != "" {
						rooms, err = a.rooms.ListByHotel(c.Context, hotelID)
					} else {
						rooms, err = a.rooms.List(c.Context)
					}
					if err != nil {
						return a.fail(err)
					}
					printRooms(c.App.Writer, rooms)
					return nil
				}),
			},
			{
				Name:      "show",
				ArgsUsage: "<room-id>",
				Action: withApp(func(c *cli.Context, a *app) error {
					id, err := requireArg(c, "room-id")
					if err != nil {
						return a.fail(err)
					}
					r, err := a.rooms.Get(c.Context, id)
					if err != nil {
						return a.fail(err)
					}
					fmt.Fprintf(c.App.Writer, "%s (%s)\nHotel: %s\nPrice: %s/night  Capacity: %d  Bed: %s\nAmenities: %s\n%s\n",
						r.Title, r.ID, r.Hotel.Label, money(r.Price), r.MaxGuests(), r.BedType, strings.Join(r.Amenities, ", "), r.Description)
					return nil
				}),
			},
		},
	}
}

func printHotel(w io.Writer, h models.Hotel) {
	fmt.Fprintf(w, "%s (%s) %s\n%s, %s, %s\nFrom %s/night\nAmenities: %s\n",
		h.Name, h.ID, strings.Repeat("*", h.Stars), h.Address, h.City, h.Country, money(h.PricePerNight), strings.Join(h.Amenities, ", "))
	if h.Description != "" {
		fmt.Fprintln(w, h.Description)
	}
	if len(h.Rooms) > 0 {
		fmt.Fprintln(w)
		printRooms(w, h.Rooms)
	}
}

func printRooms(out io.Writer, rooms []models.Room) {
	w := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tTITLE\tHOTEL\tPRICE\tGUESTS")
	for _, r := range rooms {
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%d\n", r.ID, r.Title, r.Hotel.Label, money(r.Price), r.MaxGuests())
	}
	w.Flush()
}

func money(v float64) string {
	return fmt.Sprintf("₹%.0f", v)
}
