package api_test

import (
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"

	"github.com/labstack/echo/v4"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/mock/gomock"

	"github.com/afya-care/monitoring/api"
	patientsTest "github.com/afya-care/monitoring/patients/test"
	"github.com/afya-care/monitoring/trackingcodes"
	trackingcodesTest "github.com/afya-care/monitoring/trackingcodes/test"
)

var _ = Describe("CreatePatient", func() {
	var ctrl *gomock.Controller
	var trackingCodesService *trackingcodesTest.MockService
	var patientsService *patientsTest.MockService
	var handler *api.Handler
	var e *echo.Echo

	BeforeEach(func() {
		ctrl = gomock.NewController(GinkgoT())
		trackingCodesService = trackingcodesTest.NewMockService(ctrl)
		patientsService = patientsTest.NewMockService(ctrl)
		handler = api.NewHandler(api.Params{
			TrackingCodes: trackingCodesService,
			Patients:      patientsService,
		})
		e = echo.New()
	})

	AfterEach(func() {
		ctrl.Finish()
	})

	createPatient := func(body string) (*httptest.ResponseRecorder, error) {
		req := httptest.NewRequest(http.MethodPost, "/v1/patients", strings.NewReader(body))
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
		rec := httptest.NewRecorder()
		return rec, handler.CreatePatient(e.NewContext(req, rec))
	}

	It("creates the patient without a tracking code", func() {
		patient := patientsTest.RandomPatient()
		id := primitive.NewObjectID()
		patient.Id = &id

		patientsService.EXPECT().
			Create(gomock.Any(), gomock.Any()).
			Return(&patient, nil)

		rec, err := createPatient(`{"fullName":"Amina Khelifi","email":"amina@example.com"}`)
		Expect(err).ToNot(HaveOccurred())
		Expect(rec.Code).To(Equal(http.StatusCreated))
	})

	It("rejects an already-redeemed code before the patient record exists", func() {
		// A conflict after the insert would orphan the record and take the
		// email address with it
		code := trackingcodesTest.RedeemedCode(primitive.NewObjectID(), primitive.NewObjectID())
		trackingCodesService.EXPECT().
			Get(gomock.Any(), code.Code).
			Return(code, nil)

		body := fmt.Sprintf(`{"fullName":"Amina Khelifi","email":"amina@example.com","trackingCode":%q}`, code.Code)
		_, err := createPatient(body)
		Expect(err).To(MatchError(trackingcodes.ErrAlreadyRedeemed))
	})

	It("rejects an unknown code before the patient record exists", func() {
		trackingCodesService.EXPECT().
			Get(gomock.Any(), "AFYA-AB12C").
			Return(nil, trackingcodes.ErrNotFound)

		_, err := createPatient(`{"fullName":"Amina Khelifi","email":"amina@example.com","trackingCode":"AFYA-AB12C"}`)
		Expect(err).To(MatchError(trackingcodes.ErrNotFound))
	})

	It("creates and associates the patient when the code is active", func() {
		doctorId := primitive.NewObjectID()
		code := trackingcodesTest.RandomActiveCode(doctorId)

		patient := patientsTest.RandomPatient()
		id := primitive.NewObjectID()
		patient.Id = &id

		associated := patient
		associated.DoctorId = &doctorId
		associated.TrackingCode = &code.Code
		associated.HasUnlockedFeatures = true

		trackingCodesService.EXPECT().
			Get(gomock.Any(), code.Code).
			Return(code, nil)
		patientsService.EXPECT().
			Create(gomock.Any(), gomock.Any()).
			Return(&patient, nil)
		trackingCodesService.EXPECT().
			Redeem(gomock.Any(), code.Code, id.Hex()).
			Return(&trackingcodes.Association{DoctorId: doctorId, Code: code.Code}, nil)
		patientsService.EXPECT().
			Get(gomock.Any(), id.Hex()).
			Return(&associated, nil)

		body := fmt.Sprintf(`{"fullName":"Amina Khelifi","email":"amina@example.com","trackingCode":%q}`, code.Code)
		rec, err := createPatient(body)
		Expect(err).ToNot(HaveOccurred())
		Expect(rec.Code).To(Equal(http.StatusCreated))
		Expect(rec.Body.String()).To(ContainSubstring(`"hasUnlockedFeatures":true`))
	})
})
