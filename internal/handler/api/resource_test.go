//go:build unit

package api_test

import (
	"net/http"
	"testing"

	"court-booking/internal/handler/api"
	resdto "court-booking/internal/handler/dto/response"
	"court-booking/internal/handler/validation"
	"court-booking/internal/pkg/errs"
	"court-booking/internal/usecase/queries"
	"court-booking/tests/common/builder"
	"court-booking/tests/common/httptest"
	queriesmock "court-booking/tests/mock/queries"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"
)

type ResourceHandlerTestSuite struct {
	suite.Suite
	router           *gin.Engine
	mockCtrl         *gomock.Controller
	mockResources    *queriesmock.MockResourceQueries
	mockAvailability *queriesmock.MockAvailabilityQueries
	mockReservations *queriesmock.MockReservationQueries
}

func (s *ResourceHandlerTestSuite) SetupSuite() {
	s.Require().NoError(validation.Register())
}

func (s *ResourceHandlerTestSuite) SetupTest() {
	gin.SetMode(gin.TestMode)
	s.router = gin.New()

	s.mockCtrl = gomock.NewController(s.T())
	s.mockResources = queriesmock.NewMockResourceQueries(s.mockCtrl)
	s.mockAvailability = queriesmock.NewMockAvailabilityQueries(s.mockCtrl)
	s.mockReservations = queriesmock.NewMockReservationQueries(s.mockCtrl)
	handler := api.NewResourceHandler(s.mockResources, s.mockAvailability, s.mockReservations)

	s.router.GET("/resources", handler.ListResources)
	s.router.GET("/resources/:id", handler.GetResource)
	s.router.GET("/resources/:id/slots", handler.GetSlots)
	s.router.GET("/resources/:id/availability", handler.GetAvailability)
	s.router.GET("/resources/:id/reservations", handler.ListResourceReservations)
}

func (s *ResourceHandlerTestSuite) TearDownTest() {
	s.mockCtrl.Finish()
}

func TestResourceHandlerSuite(t *testing.T) {
	suite.Run(t, new(ResourceHandlerTestSuite))
}

func (s *ResourceHandlerTestSuite) TestListResources() {
	views := []*queries.ResourceView{
		builder.NewResourceBuilder().BuildView(),
		builder.NewResourceBuilder().WithType("padel").WithHourlyRate("18000.5").BuildView(),
	}
	s.mockResources.EXPECT().List(gomock.Any()).Return(views, nil)

	rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, "/resources", nil, nil)

	var body []resdto.ResourceResponse
	httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, &body)
	s.Require().Len(body, 2)
	s.Equal(60, body[0].SlotMinutes)
	s.Equal(90, body[1].SlotMinutes)
	s.Equal("18000.50", body[1].HourlyRate)
}

func (s *ResourceHandlerTestSuite) TestGetResource() {
	s.Run("error: 400 for malformed id", func() {
		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, "/resources/court-1", nil, nil)
		httptest.AssertErrorResponse(s.T(), rec, http.StatusBadRequest, "Invalid resource ID format")
	})

	s.Run("error: 404 when missing", func() {
		s.mockResources.EXPECT().GetByID(gomock.Any(), gomock.Any()).Return(nil, errs.ErrResourceNotFound)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, "/resources/"+uuid.NewString(), nil, nil)
		httptest.AssertErrorResponse(s.T(), rec, http.StatusNotFound, "Resource not found")
	})
}

func (s *ResourceHandlerTestSuite) TestGetSlots() {
	id := uuid.New()
	s.mockResources.EXPECT().Slots(gomock.Any(), id).Return(&queries.ResourceSlotsView{
		ResourceID:  id,
		SlotMinutes: 90,
		Slots: []queries.SlotView{
			{Key: "23:30-01:00", StartTime: "23:30", EndTime: "01:00", StartMinute: 1410, EndMinute: 1500, Duration: 90},
		},
	}, nil)

	rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, "/resources/"+id.String()+"/slots", nil, nil)

	var body queries.ResourceSlotsView
	httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, &body)
	s.Equal(90, body.SlotMinutes)
	s.Equal(1500, body.Slots[0].EndMinute)
}

func (s *ResourceHandlerTestSuite) TestGetAvailability() {
	id := uuid.New()
	base := "/resources/" + id.String() + "/availability"

	s.Run("success: passes date and selected slot", func() {
		s.mockAvailability.EXPECT().GetAvailability(gomock.Any(), id, "2030-05-17", "23:30-01:00").
			Return(&queries.AvailabilityView{ResourceID: id, Date: "2030-05-17"}, nil)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, base+"?date=2030-05-17&selected=23:30-01:00", nil, nil)

		var body queries.AvailabilityView
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, &body)
		s.Equal("2030-05-17", body.Date)
	})

	badQueries := map[string]string{
		"missing date":        "",
		"date not ISO":        "?date=17-05-2030",
		"selected not a slot": "?date=2030-05-17&selected=23:30",
	}
	for name, query := range badQueries {
		s.Run("error: "+name, func() {
			rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, base+query, nil, nil)
			httptest.AssertErrorResponse(s.T(), rec, http.StatusBadRequest, "Invalid query parameters")
		})
	}

	s.Run("error: store down answers 503 with Retry-After", func() {
		s.mockAvailability.EXPECT().GetAvailability(gomock.Any(), id, gomock.Any(), gomock.Any()).
			Return(nil, errs.Mark(errs.New("read timeout"), errs.ErrTransientStore))

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, base+"?date=2030-05-17", nil, nil)

		httptest.AssertErrorResponse(s.T(), rec, http.StatusServiceUnavailable, "temporarily unavailable")
		httptest.AssertHeaders(s.T(), rec, map[string]string{"Retry-After": "1"})
	})
}

func (s *ResourceHandlerTestSuite) TestListResourceReservations() {
	id := uuid.New()
	s.mockReservations.EXPECT().ListByResourceDate(gomock.Any(), id, "2030-05-17").
		Return([]*queries.ReservationView{builder.NewReservationBuilder().WithResourceID(id).BuildView()}, nil)

	rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, "/resources/"+id.String()+"/reservations?date=2030-05-17", nil, nil)

	var body []resdto.ReservationResponse
	httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, &body)
	s.Len(body, 1)
	s.Equal(id, body[0].ResourceID)
}
