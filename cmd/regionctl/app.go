package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/spf13/pflag"
	"go.uber.org/zap"

	"github.com/invotaxi/region-service/internal/config"
	"github.com/invotaxi/region-service/internal/domain"
	"github.com/invotaxi/region-service/internal/domain/repository"
	"github.com/invotaxi/region-service/internal/form"
	"github.com/invotaxi/region-service/internal/infrastructure/regionapi"
	"github.com/invotaxi/region-service/internal/mapsurface"
	"github.com/invotaxi/region-service/internal/pkg/errors"
	"github.com/invotaxi/region-service/internal/pkg/geo"
	"github.com/invotaxi/region-service/internal/pkg/logger"
)

const usage = `Usage: regionctl [global flags] <command> [flags]

Commands:
  list                      список регионов
  create                    создать регион
  update <id>               изменить регион
  delete <id>               удалить регион
  stats <id>                статистика региона
  preview                   показать границу как GeoJSON без обращения к API
  cities                    список городов
  city-create               создать город

Region flags (create, update, preview):
  --title, --city           название и ID города
  --lat, --lon, --radius    центр и радиус (режим точки)
  --vertex lat,lon          вершина полигона, можно повторять (режим полигона)
`

// app - состояние одного запуска CLI
type app struct {
	cfg    *config.Config
	api    repository.RegionAPI
	logger *zap.Logger
	out    io.Writer
}

// run разбирает аргументы и выполняет команду; api == nil - клиент строится из конфигурации
func run(ctx context.Context, args []string, out, errOut io.Writer, api repository.RegionAPI) int {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(errOut, "config: %v\n", err)
		return 1
	}

	global := pflag.NewFlagSet("regionctl", pflag.ContinueOnError)
	global.SetOutput(errOut)
	global.SetInterspersed(false)
	global.Usage = func() { fmt.Fprint(errOut, usage) }
	baseURL := global.String("api", cfg.RegionAPI.BaseURL, "базовый URL API регионов")
	token := global.String("token", cfg.RegionAPI.Token, "bearer-токен")
	timeout := global.Duration("timeout", cfg.RegionAPI.RequestTimeout, "таймаут запроса")
	logLevel := global.String("log-level", "warn", "уровень логирования")

	if err := global.Parse(args); err != nil {
		return 2
	}
	rest := global.Args()
	if len(rest) == 0 {
		global.Usage()
		return 2
	}

	log, err := logger.NewConsole(*logLevel)
	if err != nil {
		fmt.Fprintf(errOut, "logger: %v\n", err)
		return 1
	}
	defer log.Sync()

	cfg.RegionAPI.BaseURL = strings.TrimRight(*baseURL, "/")
	cfg.RegionAPI.Token = *token
	cfg.RegionAPI.RequestTimeout = *timeout
	if api == nil {
		api = regionapi.NewClient(&cfg.RegionAPI, log)
	}

	a := &app{cfg: cfg, api: api, logger: log, out: out}

	cmd, cmdArgs := rest[0], rest[1:]
	switch cmd {
	case "list":
		err = a.list(ctx, cmdArgs)
	case "create":
		err = a.saveRegion(ctx, "", cmdArgs)
	case "update":
		if len(cmdArgs) == 0 {
			err = fmt.Errorf("update: region id is required")
			break
		}
		err = a.saveRegion(ctx, cmdArgs[0], cmdArgs[1:])
	case "delete":
		if len(cmdArgs) == 0 {
			err = fmt.Errorf("delete: region id is required")
			break
		}
		err = a.api.DeleteRegion(ctx, cmdArgs[0])
		if err == nil {
			fmt.Fprintf(out, "deleted %s\n", cmdArgs[0])
		}
	case "stats":
		if len(cmdArgs) == 0 {
			err = fmt.Errorf("stats: region id is required")
			break
		}
		var stats *domain.RegionStats
		if stats, err = a.api.GetRegionStats(ctx, cmdArgs[0]); err == nil {
			err = a.printJSON(stats)
		}
	case "preview":
		err = a.preview(cmdArgs)
	case "cities":
		var cities []*domain.City
		if cities, err = a.api.ListCities(ctx); err == nil {
			err = a.printJSON(cities)
		}
	case "city-create":
		err = a.createCity(ctx, cmdArgs)
	case "help":
		global.Usage()
		return 0
	default:
		fmt.Fprintf(errOut, "unknown command %q\n\n", cmd)
		global.Usage()
		return 2
	}

	if err != nil {
		if appErr, ok := errors.As(err); ok {
			fmt.Fprintf(errOut, "error: %s: %s", appErr.Code, appErr.Message)
			if field := form.FieldOf(err); field != "" {
				fmt.Fprintf(errOut, " (field %s)", field)
			}
			fmt.Fprintln(errOut)
		} else {
			fmt.Fprintf(errOut, "error: %v\n", err)
		}
		return 1
	}
	return 0
}

// regionFlags - флаги границы и полей формы
type regionFlags struct {
	title    string
	city     string
	lat      string
	lon      string
	radius   string
	vertices []string
}

func parseRegionFlags(name string, args []string) (*regionFlags, error) {
	fs := pflag.NewFlagSet(name, pflag.ContinueOnError)
	fs.SetOutput(io.Discard)

	rf := &regionFlags{}
	fs.StringVar(&rf.title, "title", "", "название региона")
	fs.StringVar(&rf.city, "city", "", "ID города")
	fs.StringVar(&rf.lat, "lat", "", "широта центра")
	fs.StringVar(&rf.lon, "lon", "", "долгота центра")
	fs.StringVar(&rf.radius, "radius", "", "радиус обслуживания, м")
	fs.StringArrayVar(&rf.vertices, "vertex", nil, "вершина полигона lat,lon")

	if err := fs.Parse(args); err != nil {
		return nil, fmt.Errorf("%s: %w", name, err)
	}
	return rf, nil
}

func parseVertex(s string) (domain.GeoPoint, error) {
	parts := strings.Split(s, ",")
	if len(parts) != 2 {
		return domain.GeoPoint{}, errors.ErrInvalidValue.
			WithMessage(fmt.Sprintf("vertex %q must be lat,lon", s))
	}
	lat, err := geo.ParseLat(parts[0])
	if err != nil {
		return domain.GeoPoint{}, err
	}
	lon, err := geo.ParseLon(parts[1])
	if err != nil {
		return domain.GeoPoint{}, err
	}
	return domain.GeoPoint{Lat: lat, Lon: lon}, nil
}

// session - форма региона поверх карты в памяти
type session struct {
	engine *mapsurface.MemEngine
	form   *form.RegionForm
}

func (a *app) newSession() (*session, error) {
	center := domain.GeoPoint{Lat: a.cfg.Map.DefaultLat, Lon: a.cfg.Map.DefaultLon}
	opts := mapsurface.Options{
		IconURL:       a.cfg.Map.IconURL,
		VertexIconURL: a.cfg.Map.VertexIconURL,
		Attribution:   a.cfg.Map.Attribution,
		MinZoom:       a.cfg.Map.MinZoom,
		MaxZoom:       a.cfg.Map.MaxZoom,
	}

	engine := mapsurface.NewMemEngine()
	surface := mapsurface.NewSurface(engine, opts, center, a.logger)
	f := form.NewRegionForm(a.api, surface, form.RegionFormConfig{DefaultCenter: center}, a.logger)
	if err := surface.ContainerReady(800, 600); err != nil {
		return nil, fmt.Errorf("map: %w", err)
	}
	return &session{engine: engine, form: f}, nil
}

// fill переносит флаги в форму так же, как это сделал бы пользователь:
// ввод координат с потерей фокуса или клики по карте для вершин
func (s *session) fill(rf *regionFlags) error {
	if rf.title != "" {
		s.form.SetTitle(rf.title)
	}

	if len(rf.vertices) > 0 {
		points := make([]domain.GeoPoint, 0, len(rf.vertices))
		for _, v := range rf.vertices {
			p, err := parseVertex(v)
			if err != nil {
				return err
			}
			points = append(points, p)
		}
		// через режим точки, чтобы начать полигон с нуля
		s.form.SwitchMode(domain.BoundaryModePoint)
		s.form.SwitchMode(domain.BoundaryModePolygon)
		for _, p := range points {
			s.engine.Click(p)
		}
		return nil
	}

	if rf.lat != "" || rf.lon != "" || rf.radius != "" {
		s.form.SwitchMode(domain.BoundaryModePoint)
	}
	if rf.lat != "" || rf.lon != "" {
		fields := s.form.Fields()
		lat, lon := fields.Lat, fields.Lon
		if rf.lat != "" {
			lat = rf.lat
		}
		if rf.lon != "" {
			lon = rf.lon
		}
		s.form.SetLatText(lat)
		s.form.SetLonText(lon)
		if err := s.form.BlurCoordinates(); err != nil {
			return err
		}
	}
	if rf.radius != "" {
		s.form.SetRadiusText(rf.radius)
		if err := s.form.BlurRadius(); err != nil {
			return err
		}
	}
	return nil
}

func (a *app) saveRegion(ctx context.Context, id string, args []string) error {
	name := "create"
	if id != "" {
		name = "update"
	}
	rf, err := parseRegionFlags(name, args)
	if err != nil {
		return err
	}

	s, err := a.newSession()
	if err != nil {
		return err
	}

	if _, err := s.form.LoadCities(ctx); err != nil {
		a.logger.Warn("City list unavailable", zap.Error(err))
	}

	var existing *domain.Region
	if id != "" {
		if existing, err = a.findRegion(ctx, id); err != nil {
			return err
		}
	}
	if err := s.form.Open(existing); err != nil {
		return err
	}
	if rf.city != "" {
		if err := s.form.SelectCity(rf.city); err != nil {
			return err
		}
	}
	if err := s.fill(rf); err != nil {
		return err
	}

	region, err := s.form.Submit(ctx)
	if err != nil {
		return err
	}
	return a.printJSON(region)
}

func (a *app) findRegion(ctx context.Context, id string) (*domain.Region, error) {
	regions, err := a.api.ListRegions(ctx)
	if err != nil {
		return nil, err
	}
	for _, r := range regions {
		if r.ID == id {
			return r, nil
		}
	}
	return nil, errors.ErrRegionNotFound
}

func (a *app) list(ctx context.Context, args []string) error {
	fs := pflag.NewFlagSet("list", pflag.ContinueOnError)
	fs.SetOutput(io.Discard)
	city := fs.String("city", "", "только регионы города")
	if err := fs.Parse(args); err != nil {
		return fmt.Errorf("list: %w", err)
	}

	regions, err := a.api.ListRegions(ctx)
	if err != nil {
		return err
	}

	out := make([]*domain.Region, 0, len(regions))
	for _, r := range regions {
		if *city == "" || r.CityID == *city {
			out = append(out, r)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Title < out[j].Title })
	return a.printJSON(out)
}

// preview строит границу в редакторе и печатает её GeoJSON; API не вызывается
func (a *app) preview(args []string) error {
	rf, err := parseRegionFlags("preview", args)
	if err != nil {
		return err
	}

	s, err := a.newSession()
	if err != nil {
		return err
	}
	if err := s.form.Open(nil); err != nil {
		return err
	}
	if err := s.fill(rf); err != nil {
		return err
	}

	b := s.form.Boundary()
	if err := b.Validate(); err != nil {
		return err
	}

	data, err := b.GeoJSON().MarshalJSON()
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(a.out, string(data))
	return err
}

func (a *app) createCity(ctx context.Context, args []string) error {
	fs := pflag.NewFlagSet("city-create", pflag.ContinueOnError)
	fs.SetOutput(io.Discard)
	title := fs.String("title", "", "название города")
	lat := fs.String("lat", "", "широта центра")
	lon := fs.String("lon", "", "долгота центра")
	if err := fs.Parse(args); err != nil {
		return fmt.Errorf("city-create: %w", err)
	}

	f := form.NewCityForm(a.api, nil, a.logger)
	f.Open(nil)
	f.SetTitle(*title)
	f.SetLatText(*lat)
	f.SetLonText(*lon)

	city, err := f.Submit(ctx)
	if err != nil {
		return err
	}
	return a.printJSON(city)
}

func (a *app) printJSON(v interface{}) error {
	enc := json.NewEncoder(a.out)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

