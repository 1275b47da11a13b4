package status

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/MKhiriev/crimewatch-access/internal/adapter"
	"github.com/MKhiriev/crimewatch-access/internal/mock"
	"github.com/MKhiriev/crimewatch-access/models"
)

func TestRemoteSource_Collect(t *testing.T) {
	ctrl := gomock.NewController(t)
	client := mock.NewMockAccessClient(ctrl)

	at := time.Date(2025, 6, 1, 10, 0, 0, 0, time.UTC)
	gomock.InOrder(
		client.EXPECT().ListUsers(gomock.Any()).
			Return([]models.User{{UserID: 1, Username: "admin", Role: models.RoleAdmin, Active: true}}, nil),
		client.EXPECT().ListAudit(gomock.Any(), models.AuditFilter{Limit: AuditLimit, Newest: true}).
			Return([]models.AuditEntry{{Username: "admin", Action: models.AuditLogin, Timestamp: at}}, nil),
		client.EXPECT().ListOpenSessions(gomock.Any()).Return(nil, nil),
		client.EXPECT().ListRecentSessions(gomock.Any(), SessionLimit).Return(nil, nil),
		client.EXPECT().ListPredictions(gomock.Any(), AttributionSize).Return(nil, nil),
		client.EXPECT().ListReports(gomock.Any(), AttributionSize).
			Return([]models.ReportRecord{{Username: "admin", ReportType: "PDF", FilePath: "/tmp/r.pdf", GeneratedAt: at}}, nil),
	)

	r, err := Collect(context.Background(), NewRemoteSource(client), at)
	require.NoError(t, err)

	assert.Len(t, r.Users, 1)
	require.Len(t, r.RecentAudit, 1)
	assert.Equal(t, models.AuditLogin, r.RecentAudit[0].Action)
	require.Len(t, r.Reports, 1)
	assert.Equal(t, "/tmp/r.pdf", r.Reports[0].FilePath)
}

func TestRemoteSource_Forbidden(t *testing.T) {
	ctrl := gomock.NewController(t)
	client := mock.NewMockAccessClient(ctrl)

	client.EXPECT().ListUsers(gomock.Any()).
		Return(nil, errors.Join(adapter.ErrForbidden, errors.New("forbidden")))

	_, err := Collect(context.Background(), NewRemoteSource(client), time.Now())
	require.Error(t, err)
	assert.ErrorIs(t, err, adapter.ErrForbidden)
	assert.Contains(t, err.Error(), "reading users")
}
