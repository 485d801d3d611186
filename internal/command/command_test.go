package command

import (
	"bytes"
	"io"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/medibook/medibook-cli/internal/config"
	"github.com/medibook/medibook-cli/internal/model"
	"github.com/medibook/medibook-cli/internal/session"
)

func testApp(t *testing.T, input string, routes func(*gin.Engine)) (*App, *bytes.Buffer) {
	t.Helper()
	gin.SetMode(gin.TestMode)
	r := gin.New()
	if routes != nil {
		routes(r)
	}
	srv := httptest.NewServer(r)
	t.Cleanup(srv.Close)

	cfg := &config.Config{
		API: config.APIConfig{
			BaseURL:        srv.URL,
			TimeoutSeconds: 5,
			RateLimitRPS:   100,
			RateLimitBurst: 100,
			CacheTTLSecs:   60,
		},
		SessionFile: filepath.Join(t.TempDir(), "session.json"),
		LogLevel:    "error",
	}

	var out bytes.Buffer
	app, err := NewApp(cfg, strings.NewReader(input), &out)
	require.NoError(t, err)
	return app, &out
}

func run(cmd *cobra.Command, args ...string) error {
	cmd.SetArgs(args)
	cmd.SetOut(io.Discard)
	cmd.SetErr(io.Discard)
	return cmd.Execute()
}

func loginAs(t *testing.T, a *App, role string) {
	t.Helper()
	require.NoError(t, a.store.Save(session.Session{
		AccessToken:  "tok",
		RefreshToken: "ref",
		Role:         role,
		Username:     "alice",
	}))
}

func get(a *App) func() *App {
	return func() *App { return a }
}

func TestLoginStoresSession(t *testing.T) {
	app, out := testApp(t, "", func(r *gin.Engine) {
		r.POST("/token/", func(c *gin.Context) {
			var req model.LoginRequest
			require.NoError(t, c.ShouldBindJSON(&req))
			assert.Equal(t, "alice", req.Username)
			c.JSON(http.StatusOK, model.TokenResponse{
				Access: "acc", Refresh: "ref", Role: model.RolePatient, Username: "alice",
			})
		})
	})

	require.NoError(t, run(newLoginCmd(get(app)), "-u", "alice", "-p", "secretpw"))

	s, err := app.store.Load()
	require.NoError(t, err)
	assert.Equal(t, "acc", s.AccessToken)
	assert.Equal(t, "ref", s.RefreshToken)
	assert.Equal(t, model.RolePatient, s.Role)
	assert.Equal(t, "alice", s.Username)
	assert.Contains(t, out.String(), "Logged in as alice (patient)")
}

func TestLoginPromptsForMissingCredentials(t *testing.T) {
	app, _ := testApp(t, "alice\nsecretpw\n", func(r *gin.Engine) {
		r.POST("/token/", func(c *gin.Context) {
			var req model.LoginRequest
			require.NoError(t, c.ShouldBindJSON(&req))
			assert.Equal(t, "alice", req.Username)
			assert.Equal(t, "secretpw", req.Password)
			c.JSON(http.StatusOK, model.TokenResponse{Access: "acc", Role: model.RolePatient, Username: "alice"})
		})
	})

	require.NoError(t, run(newLoginCmd(get(app))))
}

func TestLogoutClearsSessionAndBlocksAuthenticatedCommands(t *testing.T) {
	app, _ := testApp(t, "", nil)
	loginAs(t, app, model.RolePatient)

	require.NoError(t, run(newLogoutCmd(get(app))))

	s, err := app.store.Load()
	require.NoError(t, err)
	assert.Empty(t, s.AccessToken)
	assert.Empty(t, s.RefreshToken)
	assert.Empty(t, s.Role)
	assert.Empty(t, s.Username)

	err = run(newWhoamiCmd(get(app)))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "medibook login")
}

func TestUnauthorizedResponseClearsSession(t *testing.T) {
	app, _ := testApp(t, "", func(r *gin.Engine) {
		r.GET("/api/patient/appointments/", func(c *gin.Context) {
			c.JSON(http.StatusUnauthorized, gin.H{"detail": "Token is invalid or expired"})
		})
	})
	loginAs(t, app, model.RolePatient)

	err := run(newAppointmentsCmd(get(app)), "list")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "session expired")

	s, loadErr := app.store.Load()
	require.NoError(t, loadErr)
	assert.False(t, s.LoggedIn())
}

func bookingRoutes(t *testing.T, booked *model.BookAppointmentRequest) func(*gin.Engine) {
	return func(r *gin.Engine) {
		r.GET("/api/doctors/", func(c *gin.Context) {
			c.JSON(http.StatusOK, []model.Doctor{{
				DoctorID:  7,
				User:      model.UserInfo{ID: 70, Username: "house"},
				Specialty: &model.Specialty{ID: 1, Name: "Diagnostics"},
			}})
		})
		r.GET("/api/availabilities/by_doctor/", func(c *gin.Context) {
			c.JSON(http.StatusOK, []model.Availability{{
				ID: 1, Date: "2026-09-10",
				TimeSlots: []model.TimeSlot{
					{StartTime: "09:00", EndTime: "09:30", IsAvailable: true},
					{StartTime: "09:30", EndTime: "10:00", IsAvailable: false},
				},
			}})
		})
		r.POST("/api/patient/appointments/", func(c *gin.Context) {
			require.NoError(t, c.ShouldBindJSON(booked))
			c.JSON(http.StatusCreated, gin.H{"id": 1})
		})
	}
}

func TestBookNonInteractive(t *testing.T) {
	var booked model.BookAppointmentRequest
	app, out := testApp(t, "", bookingRoutes(t, &booked))
	loginAs(t, app, model.RolePatient)

	require.NoError(t, run(newBookCmd(get(app)), "7", "--date", "2026-09-10", "--slot", "09:00", "--yes"))

	assert.Equal(t, int64(7), booked.Doctor)
	assert.Equal(t, "2026-09-10T09:00:00Z", booked.StartDateTime)
	assert.Equal(t, "2026-09-10T09:30:00Z", booked.EndDateTime)
	assert.Contains(t, out.String(), "Appointment booked")
	assert.Contains(t, out.String(), "medibook appointments list")
}

func TestBookInteractiveRepromptsOnBookedSlot(t *testing.T) {
	var booked model.BookAppointmentRequest
	// pick the date, try the booked slot, then the open one, confirm
	app, out := testApp(t, "2026-09-10\n2\n1\ny\n", bookingRoutes(t, &booked))
	loginAs(t, app, model.RolePatient)

	require.NoError(t, run(newBookCmd(get(app)), "7"))

	assert.Contains(t, out.String(), "already booked")
	assert.Equal(t, "2026-09-10T09:00:00Z", booked.StartDateTime)
}

func TestBookSelectingBookedSlotDirectlyFails(t *testing.T) {
	var booked model.BookAppointmentRequest
	app, _ := testApp(t, "", bookingRoutes(t, &booked))
	loginAs(t, app, model.RolePatient)

	err := run(newBookCmd(get(app)), "7", "--date", "2026-09-10", "--slot", "09:30", "--yes")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "already booked")
	assert.Empty(t, booked.StartDateTime, "nothing must be submitted")
}

func TestBookEmptyStateShowsDirectoryHint(t *testing.T) {
	app, out := testApp(t, "", func(r *gin.Engine) {
		r.GET("/api/doctors/", func(c *gin.Context) {
			c.JSON(http.StatusOK, []model.Doctor{{DoctorID: 7, User: model.UserInfo{Username: "house"}}})
		})
		r.GET("/api/availabilities/by_doctor/", func(c *gin.Context) {
			c.JSON(http.StatusOK, []model.Availability{})
		})
	})
	loginAs(t, app, model.RolePatient)

	require.NoError(t, run(newBookCmd(get(app)), "7"))
	assert.Contains(t, out.String(), "no available slots")
	assert.Contains(t, out.String(), "medibook doctors")
	assert.NotContains(t, out.String(), "Select date", "no date grid on the empty state")
}

func TestBookRejectsDoctors(t *testing.T) {
	app, _ := testApp(t, "", nil)
	loginAs(t, app, model.RoleDoctor)

	err := run(newBookCmd(get(app)), "7")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "only patients")
}

func TestBookSurfacesOverlapError(t *testing.T) {
	app, _ := testApp(t, "", func(r *gin.Engine) {
		r.GET("/api/doctors/", func(c *gin.Context) {
			c.JSON(http.StatusOK, []model.Doctor{{DoctorID: 7, User: model.UserInfo{Username: "house"}}})
		})
		r.GET("/api/availabilities/by_doctor/", func(c *gin.Context) {
			c.JSON(http.StatusOK, []model.Availability{{
				ID: 1, Date: "2026-09-10",
				TimeSlots: []model.TimeSlot{{StartTime: "09:00", EndTime: "09:30", IsAvailable: true}},
			}})
		})
		r.POST("/api/patient/appointments/", func(c *gin.Context) {
			c.JSON(http.StatusBadRequest, gin.H{"start_date_time": []string{"Overlapping slot"}})
		})
	})
	loginAs(t, app, model.RolePatient)

	err := run(newBookCmd(get(app)), "7", "--date", "2026-09-10", "--slot", "09:00", "--yes")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "start_date_time")
	assert.Contains(t, err.Error(), "Overlapping slot")
}

func TestCancelAsksForConfirmation(t *testing.T) {
	deleted := false
	routes := func(r *gin.Engine) {
		r.DELETE("/api/patient/appointments/:id/", func(c *gin.Context) {
			deleted = true
			c.Status(http.StatusNoContent)
		})
	}

	app, out := testApp(t, "n\n", routes)
	loginAs(t, app, model.RolePatient)
	require.NoError(t, run(newAppointmentsCmd(get(app)), "cancel", "3"))
	assert.False(t, deleted, "declined confirmation must not send the request")
	assert.Contains(t, out.String(), "Aborted")

	app2, _ := testApp(t, "", routes)
	loginAs(t, app2, model.RolePatient)
	require.NoError(t, run(newAppointmentsCmd(get(app2)), "cancel", "3", "--yes"))
	assert.True(t, deleted)
}

func TestAppointmentsListByRole(t *testing.T) {
	routes := func(r *gin.Engine) {
		r.GET("/api/patient/appointments/", func(c *gin.Context) {
			c.JSON(http.StatusOK, []model.PatientAppointment{{
				ID: 1, DoctorName: "house", Specialty: "Diagnostics",
				StartDateTime: "2026-09-10T09:00:00Z", EndDateTime: "2026-09-10T09:30:00Z",
			}})
		})
		r.GET("/api/doctor/appointments/", func(c *gin.Context) {
			c.JSON(http.StatusOK, []model.DoctorAppointment{{
				ID: 2, PatientName: "bob",
				StartDateTime: "2026-09-11T10:00:00Z", EndDateTime: "2026-09-11T10:30:00Z",
			}})
		})
	}

	app, out := testApp(t, "", routes)
	loginAs(t, app, model.RolePatient)
	require.NoError(t, run(newAppointmentsCmd(get(app)), "list"))
	assert.Contains(t, out.String(), "Dr. house")

	app2, out2 := testApp(t, "", routes)
	loginAs(t, app2, model.RoleDoctor)
	require.NoError(t, run(newAppointmentsCmd(get(app2)), "list"))
	assert.Contains(t, out2.String(), "bob")
}

func TestProfileUpdateRewritesStoredUsername(t *testing.T) {
	app, _ := testApp(t, "", func(r *gin.Engine) {
		r.GET("/api/doctor/profile/", func(c *gin.Context) {
			c.JSON(http.StatusOK, model.DoctorProfile{
				DoctorID: 7,
				User:     model.UserInfo{ID: 70, Username: "alice", Email: "a@b.com"},
			})
		})
		r.PATCH("/api/doctor/profile/", func(c *gin.Context) {
			var req model.UpdateDoctorProfileRequest
			require.NoError(t, c.ShouldBindJSON(&req))
			c.JSON(http.StatusOK, model.DoctorProfile{
				DoctorID: 7,
				User:     model.UserInfo{ID: 70, Username: req.User.Username, Email: req.User.Email},
			})
		})
	})
	loginAs(t, app, model.RoleDoctor)

	require.NoError(t, run(newProfileCmd(get(app)), "update", "--username", "drhouse"))

	s, err := app.store.Load()
	require.NoError(t, err)
	assert.Equal(t, "drhouse", s.Username)
}

func TestDoctorsDirectoryFiltering(t *testing.T) {
	routes := func(r *gin.Engine) {
		r.GET("/api/doctors/", func(c *gin.Context) {
			c.JSON(http.StatusOK, []model.Doctor{
				{DoctorID: 1, User: model.UserInfo{Username: "house"},
					Specialty: &model.Specialty{ID: 1, Name: "Diagnostics"}},
				{DoctorID: 2, User: model.UserInfo{Username: "wilson"},
					Specialty: &model.Specialty{ID: 2, Name: "Oncology"}},
			})
		})
	}

	app, out := testApp(t, "", routes)
	loginAs(t, app, model.RolePatient)
	require.NoError(t, run(newDoctorsCmd(get(app)), "--specialty", "2"))
	assert.Contains(t, out.String(), "wilson")
	assert.NotContains(t, out.String(), "house")

	app2, out2 := testApp(t, "", routes)
	loginAs(t, app2, model.RolePatient)
	require.NoError(t, run(newDoctorsCmd(get(app2)), "--search", "hou"))
	assert.Contains(t, out2.String(), "house")
	assert.NotContains(t, out2.String(), "wilson")
}
