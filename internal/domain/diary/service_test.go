package diary_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/diarioapp/diario/internal/domain/diary"
	"github.com/diarioapp/diario/internal/store"
	"github.com/diarioapp/diario/internal/store/mocks"
)

var testCredential = []byte(`{"type":"service_account"}`)

func writerFactory(w store.CellWriter, err error) diary.ClientFactory {
	return func(ctx context.Context, credentialJSON []byte) (store.CellWriter, error) {
		return w, err
	}
}

func sampleTable() store.Table {
	return store.Table{
		Columns: []string{"Data", "Giorno", "Ora", "Attività", "Materia", "Tipo", "Stato", "Punteggio", "Note"},
		Rows: [][]string{
			{"2026-08-25", "Martedì", "08:00", "Studio", "Matematica", "Compiti", "✅", "", ""},
			{"2026-08-25", "Martedì", "09:00", "Lettura", "Storia", "", "", "", ""},
			{"2026-08-26", "Mercoledì", "08:00", "Studio", "Inglese", "", "⚠️", "", ""},
		},
	}
}

func TestService_Load_ReadOnly(t *testing.T) {
	ctx := context.Background()

	reader := &mocks.TableReader{}
	reader.On("ReadTable", ctx).Return(sampleTable(), nil)

	svc := diary.NewService(reader, nil, nil)
	snap, err := svc.Load(ctx, diary.Options{Mode: diary.ModeReadOnly, Points: diary.DefaultPoints()})
	require.NoError(t, err)
	require.Len(t, snap.Entries, 3)

	sum := snap.Summary()
	require.Equal(t, 15, sum.TotalPoints)
	require.Equal(t, 2, sum.MarkedHours)
	require.Equal(t, "READ_ONLY", sum.ModeLabel)
}

func TestService_Load_FetchError(t *testing.T) {
	ctx := context.Background()

	reader := &mocks.TableReader{}
	reader.On("ReadTable", ctx).Return(nil, store.ErrFetch)

	svc := diary.NewService(reader, nil, nil)
	snap, err := svc.Load(ctx, diary.Options{Mode: diary.ModeReadOnly, Points: diary.DefaultPoints()})
	require.ErrorIs(t, err, store.ErrFetch)

	// the view still gets a renderable empty snapshot
	require.NotNil(t, snap)
	require.Empty(t, snap.Entries)
	sum := snap.Summary()
	require.Equal(t, 0, sum.TotalPoints)
	require.Equal(t, 0, sum.MarkedHours)
	require.Empty(t, snap.DailyTrend())
}

func TestService_Load_ReadWriteWithoutCredential(t *testing.T) {
	svc := diary.NewService(&mocks.TableReader{}, writerFactory(nil, nil), nil)
	_, err := svc.Load(context.Background(), diary.Options{Mode: diary.ModeReadWrite, Points: diary.DefaultPoints()})
	require.ErrorIs(t, err, store.ErrAuth)
}

func TestService_Load_ReadWrite(t *testing.T) {
	ctx := context.Background()

	writer := &mocks.CellWriter{}
	writer.On("ReadTable", ctx).Return(sampleTable(), nil)

	svc := diary.NewService(&mocks.TableReader{}, writerFactory(writer, nil), nil)
	snap, err := svc.Load(ctx, diary.Options{
		Mode:           diary.ModeReadWrite,
		Points:         diary.DefaultPoints(),
		CredentialJSON: testCredential,
	})
	require.NoError(t, err)
	require.Equal(t, "READ_WRITE", snap.Summary().ModeLabel)
	require.Len(t, snap.Entries, 3)
}

func TestService_SaveStatus_ReadOnly(t *testing.T) {
	svc := diary.NewService(&mocks.TableReader{}, nil, nil)
	err := svc.SaveStatus(context.Background(),
		diary.Options{Mode: diary.ModeReadOnly, Points: diary.DefaultPoints()},
		diary.EntryKey{Date: "2026-08-25", Time: "08:00"},
		diary.StatusDone,
	)
	require.ErrorIs(t, err, diary.ErrReadOnly)
}

func TestService_SaveStatus_MissingCredential(t *testing.T) {
	svc := diary.NewService(&mocks.TableReader{}, writerFactory(nil, nil), nil)
	err := svc.SaveStatus(context.Background(),
		diary.Options{Mode: diary.ModeReadWrite, Points: diary.DefaultPoints()},
		diary.EntryKey{Date: "2026-08-25", Time: "08:00"},
		diary.StatusDone,
	)
	require.ErrorIs(t, err, diary.ErrReadOnly)
}

func TestService_SaveStatus_UpdatesMatchingRow(t *testing.T) {
	ctx := context.Background()

	writer := &mocks.CellWriter{}
	writer.On("ReadTable", ctx).Return(sampleTable(), nil)
	// second data row, Stato is the seventh column
	writer.On("UpdateCell", ctx, 3, 7, "⚠️").Return(nil)

	svc := diary.NewService(&mocks.TableReader{}, writerFactory(writer, nil), nil)
	err := svc.SaveStatus(ctx,
		diary.Options{Mode: diary.ModeReadWrite, Points: diary.DefaultPoints(), CredentialJSON: testCredential},
		diary.EntryKey{Date: "2026-08-25", Time: "09:00"},
		diary.StatusPartial,
	)
	require.NoError(t, err)
	writer.AssertExpectations(t)
}

func TestService_SaveStatus_FirstMatchWins(t *testing.T) {
	ctx := context.Background()

	table := sampleTable()
	table.Rows = append(table.Rows, append([]string(nil), table.Rows[0]...))

	writer := &mocks.CellWriter{}
	writer.On("ReadTable", ctx).Return(table, nil)
	writer.On("UpdateCell", ctx, 2, 7, "❌").Return(nil)

	svc := diary.NewService(&mocks.TableReader{}, writerFactory(writer, nil), nil)
	err := svc.SaveStatus(ctx,
		diary.Options{Mode: diary.ModeReadWrite, Points: diary.DefaultPoints(), CredentialJSON: testCredential},
		diary.EntryKey{Date: "2026-08-25", Time: "08:00"},
		diary.StatusMissed,
	)
	require.NoError(t, err)
	writer.AssertExpectations(t)
}

func TestService_SaveStatus_NotFound(t *testing.T) {
	ctx := context.Background()

	writer := &mocks.CellWriter{}
	writer.On("ReadTable", ctx).Return(sampleTable(), nil)

	svc := diary.NewService(&mocks.TableReader{}, writerFactory(writer, nil), nil)
	err := svc.SaveStatus(ctx,
		diary.Options{Mode: diary.ModeReadWrite, Points: diary.DefaultPoints(), CredentialJSON: testCredential},
		diary.EntryKey{Date: "1999-01-01", Time: "23:00"},
		diary.StatusDone,
	)
	require.ErrorIs(t, err, store.ErrRowNotFound)
	writer.AssertNotCalled(t, "UpdateCell")
}

func TestService_SaveStatus_InvalidMarker(t *testing.T) {
	svc := diary.NewService(&mocks.TableReader{}, writerFactory(&mocks.CellWriter{}, nil), nil)
	err := svc.SaveStatus(context.Background(),
		diary.Options{Mode: diary.ModeReadWrite, Points: diary.DefaultPoints(), CredentialJSON: testCredential},
		diary.EntryKey{Date: "2026-08-25", Time: "08:00"},
		diary.Status("fatto"),
	)
	require.ErrorIs(t, err, diary.ErrInvalidStatus)
}

func TestService_SaveStatus_WriteError(t *testing.T) {
	ctx := context.Background()

	writer := &mocks.CellWriter{}
	writer.On("ReadTable", ctx).Return(sampleTable(), nil)
	writer.On("UpdateCell", ctx, 2, 7, "✅").Return(store.ErrWrite)

	svc := diary.NewService(&mocks.TableReader{}, writerFactory(writer, nil), nil)
	err := svc.SaveStatus(ctx,
		diary.Options{Mode: diary.ModeReadWrite, Points: diary.DefaultPoints(), CredentialJSON: testCredential},
		diary.EntryKey{Date: "2026-08-25", Time: "08:00"},
		diary.StatusDone,
	)
	require.ErrorIs(t, err, store.ErrWrite)
}

func TestSnapshot_Today(t *testing.T) {
	ctx := context.Background()

	reader := &mocks.TableReader{}
	reader.On("ReadTable", ctx).Return(sampleTable(), nil)

	svc := diary.NewService(reader, nil, nil)
	snap, err := svc.Load(ctx, diary.Options{Mode: diary.ModeReadOnly, Points: diary.DefaultPoints()})
	require.NoError(t, err)

	today := snap.Today(time.Date(2026, 8, 25, 14, 30, 0, 0, time.UTC))
	require.Len(t, today, 2)
	require.Equal(t, 10, today[0].Score)
	require.Equal(t, diary.StatusNone, today[1].Status)

	require.Empty(t, snap.Today(time.Date(2000, 1, 1, 0, 0, 0, 0, time.UTC)))
}

func TestSnapshot_DailyTrend(t *testing.T) {
	ctx := context.Background()

	table := sampleTable()
	// opaque date stays out of the trend
	table.Rows = append(table.Rows, []string{"boh", "", "10:00", "", "", "", "✅", "", ""})

	reader := &mocks.TableReader{}
	reader.On("ReadTable", ctx).Return(table, nil)

	svc := diary.NewService(reader, nil, nil)
	snap, err := svc.Load(ctx, diary.Options{Mode: diary.ModeReadOnly, Points: diary.DefaultPoints()})
	require.NoError(t, err)

	trend := snap.DailyTrend()
	require.Len(t, trend, 2)
	require.True(t, trend[0].Day.Before(trend[1].Day))
	require.Equal(t, 10, trend[0].Points)
	require.Equal(t, 5, trend[1].Points)
}

func TestSnapshot_Missions(t *testing.T) {
	snap := &diary.Snapshot{Raw: store.Table{
		Columns: []string{"Data", "Tipo Missione", "Descrizione"},
		Rows: [][]string{
			{"2026-08-25", "settimanale", "leggere 10 pagine"},
			{"2026-08-26", "giornaliera", "riordinare"},
			{"2026-08-27", "", ""},
			{"2026-08-28", "", ""},
			{"2026-08-29", "", ""},
			{"2026-08-30", "extra", "oltre il limite"},
		},
	}}

	m := snap.Missions()
	require.Equal(t, []string{"Tipo Missione", "Descrizione"}, m.Columns)
	require.Len(t, m.Rows, 5)
	require.Equal(t, []string{"settimanale", "leggere 10 pagine"}, m.Rows[0])
}

func TestSnapshot_Missions_Placeholder(t *testing.T) {
	snap := &diary.Snapshot{Raw: store.Table{Columns: []string{"Data", "Ora"}}}
	m := snap.Missions()
	require.Empty(t, m.Columns)
	require.Empty(t, m.Rows)
}
