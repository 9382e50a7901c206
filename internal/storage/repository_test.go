package storage

import (
	"context"
	"database/sql"
	"database/sql/driver"
	"errors"
	"regexp"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/guttosm/stockfn/internal/domain/models"
)

type dummyErr struct{}

func (dummyErr) Error() string { return "dummy" }

const harta = `{"category":"Health Care Equipment & Services","code":"5168","countryCode":"MY","dy":30.57,"name":"Hartalega Holdings Berhad","pe":5.64,"price":1.75,"roe":20.83,"symbol":"HARTA","top":true}`

func newMockRepo(t *testing.T) (*postgresRepository, sqlmock.Sqlmock, func()) {
	t.Helper()
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock new: %v", err)
	}
	repo := &postgresRepository{db: db}
	cleanup := func() { _ = db.Close() }
	return repo, mock, cleanup
}

func fixedIDs(t *testing.T, ids ...string) {
	t.Helper()
	old := newID
	i := 0
	newID = func() string {
		id := ids[i%len(ids)]
		i++
		return id
	}
	t.Cleanup(func() { newID = old })
}

func TestFindByCode_SQLMock(t *testing.T) {
	query := regexp.QuoteMeta(`SELECT id, data FROM stock WHERE data->>'code' = $1 ORDER BY created_at`)

	cases := []struct {
		name    string
		rows    *sqlmock.Rows
		err     error
		want    int
		wantErr bool
	}{
		{name: "no match", rows: sqlmock.NewRows([]string{"id", "data"}), want: 0},
		{name: "one match", rows: sqlmock.NewRows([]string{"id", "data"}).AddRow("a1", []byte(harta)), want: 1},
		{name: "two matches", rows: sqlmock.NewRows([]string{"id", "data"}).AddRow("a1", []byte(harta)).AddRow("a2", []byte(harta)), want: 2},
		{name: "bad json", rows: sqlmock.NewRows([]string{"id", "data"}).AddRow("a1", []byte(`{`)), wantErr: true},
		{name: "query error", err: dummyErr{}, wantErr: true},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			repo, mock, done := newMockRepo(t)
			defer done()

			exp := mock.ExpectQuery(query).WithArgs("5168")
			if tc.err != nil {
				exp.WillReturnError(tc.err)
			} else {
				exp.WillReturnRows(tc.rows)
			}

			docs, err := repo.FindByCode(context.Background(), "5168")
			if tc.wantErr {
				if err == nil {
					t.Fatalf("expected error")
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected err: %v", err)
			}
			if len(docs) != tc.want {
				t.Fatalf("want %d docs, got %d", tc.want, len(docs))
			}
			if tc.want > 0 && (docs[0].ID != "a1" || docs[0].Stock.Symbol != "HARTA" || !docs[0].Stock.Top) {
				t.Fatalf("unexpected doc: %+v", docs[0])
			}
			if err := mock.ExpectationsWereMet(); err != nil {
				t.Fatalf("unmet expectations: %v", err)
			}
		})
	}
}

func TestGet_SQLMock(t *testing.T) {
	repo, mock, done := newMockRepo(t)
	defer done()

	query := regexp.QuoteMeta(`SELECT id, data FROM stock WHERE id = $1`)
	mock.ExpectQuery(query).WithArgs("a1").
		WillReturnRows(sqlmock.NewRows([]string{"id", "data"}).AddRow("a1", []byte(harta)))
	doc, err := repo.Get(context.Background(), "a1")
	if err != nil || doc == nil || doc.Stock.Code != "5168" {
		t.Fatalf("Get: doc=%+v err=%v", doc, err)
	}

	mock.ExpectQuery(query).WithArgs("missing").WillReturnError(sql.ErrNoRows)
	if _, err := repo.Get(context.Background(), "missing"); !errors.Is(err, ErrDocumentNotFound) {
		t.Fatalf("want ErrDocumentNotFound, got %v", err)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestInsert_SQLMock(t *testing.T) {
	repo, mock, done := newMockRepo(t)
	defer done()
	fixedIDs(t, "11111111-1111-1111-1111-111111111111")

	mock.ExpectExec(regexp.QuoteMeta(`INSERT INTO stock (id, data) VALUES ($1, $2)`)).
		WithArgs("11111111-1111-1111-1111-111111111111", sqlmock.AnyArg()).
		WillReturnResult(sqlmock.NewResult(0, 1))

	id, err := repo.Insert(context.Background(), models.Stock{Code: "5168"})
	if err != nil || id != "11111111-1111-1111-1111-111111111111" {
		t.Fatalf("Insert: id=%q err=%v", id, err)
	}

	mock.ExpectExec(regexp.QuoteMeta(`INSERT INTO stock (id, data) VALUES ($1, $2)`)).WillReturnError(dummyErr{})
	if _, err := repo.Insert(context.Background(), models.Stock{Code: "5168"}); err == nil {
		t.Fatalf("expected insert error")
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestUpdate_SQLMock(t *testing.T) {
	query := regexp.QuoteMeta(`UPDATE stock SET data = data || $2::jsonb WHERE id = $1`)
	price := 9.10

	cases := []struct {
		name    string
		result  driver.Result
		err     error
		wantErr error
	}{
		{name: "updated", result: sqlmock.NewResult(0, 1)},
		{name: "missing", result: sqlmock.NewResult(0, 0), wantErr: ErrDocumentNotFound},
		{name: "exec error", err: dummyErr{}, wantErr: dummyErr{}},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			repo, mock, done := newMockRepo(t)
			defer done()

			exp := mock.ExpectExec(query).WithArgs("a1", `{"price":9.1}`)
			if tc.err != nil {
				exp.WillReturnError(tc.err)
			} else {
				exp.WillReturnResult(tc.result)
			}

			err := repo.Update(context.Background(), "a1", models.StockPatch{Price: &price})
			switch {
			case tc.wantErr == nil && err != nil:
				t.Fatalf("unexpected err: %v", err)
			case tc.wantErr != nil && !errors.Is(err, tc.wantErr):
				t.Fatalf("want %v, got %v", tc.wantErr, err)
			}
			if err := mock.ExpectationsWereMet(); err != nil {
				t.Fatalf("unmet expectations: %v", err)
			}
		})
	}
}

func TestUpdate_EmptyPatchIsNoop(t *testing.T) {
	repo, mock, done := newMockRepo(t)
	defer done()

	if err := repo.Update(context.Background(), "a1", models.StockPatch{}); err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestInsertBatch_SQLMock(t *testing.T) {
	repo, mock, done := newMockRepo(t)
	defer done()

	mock.ExpectBegin()
	mock.ExpectExec(regexp.QuoteMeta("SET LOCAL synchronous_commit = OFF")).WillReturnResult(sqlmock.NewResult(0, 0))
	// pq.CopyIn is driver specific; sqlmock only sees a prepared statement with row and final Exec calls.
	prep := mock.ExpectPrepare(".*")
	prep.ExpectExec().WillReturnResult(sqlmock.NewResult(0, 1))
	prep.ExpectExec().WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec(".*").WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectCommit()

	n, err := repo.InsertBatch(context.Background(), []models.Stock{{Code: "5168"}, {Code: "7113"}})
	if err != nil || n != 2 {
		t.Fatalf("InsertBatch: n=%d err=%v", n, err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestInsertBatch_Errors(t *testing.T) {
	t.Run("empty", func(t *testing.T) {
		repo, mock, done := newMockRepo(t)
		defer done()
		if n, err := repo.InsertBatch(context.Background(), nil); err != nil || n != 0 {
			t.Fatalf("n=%d err=%v", n, err)
		}
		if err := mock.ExpectationsWereMet(); err != nil {
			t.Fatalf("unmet expectations: %v", err)
		}
	})

	t.Run("begin", func(t *testing.T) {
		repo, mock, done := newMockRepo(t)
		defer done()
		mock.ExpectBegin().WillReturnError(dummyErr{})
		if _, err := repo.InsertBatch(context.Background(), []models.Stock{{}}); err == nil {
			t.Fatalf("expected error on begin")
		}
	})

	t.Run("row exec", func(t *testing.T) {
		repo, mock, done := newMockRepo(t)
		defer done()
		mock.ExpectBegin()
		mock.ExpectExec(regexp.QuoteMeta("SET LOCAL synchronous_commit = OFF")).WillReturnResult(sqlmock.NewResult(0, 0))
		prep := mock.ExpectPrepare(".*")
		prep.ExpectExec().WillReturnError(dummyErr{})
		mock.ExpectRollback()
		if _, err := repo.InsertBatch(context.Background(), []models.Stock{{Code: "X"}}); err == nil {
			t.Fatalf("expected error on row exec")
		}
	})

	t.Run("final exec", func(t *testing.T) {
		repo, mock, done := newMockRepo(t)
		defer done()
		mock.ExpectBegin()
		mock.ExpectExec(regexp.QuoteMeta("SET LOCAL synchronous_commit = OFF")).WillReturnResult(sqlmock.NewResult(0, 0))
		prep := mock.ExpectPrepare(".*")
		prep.ExpectExec().WillReturnResult(sqlmock.NewResult(0, 1))
		mock.ExpectExec(".*").WillReturnError(dummyErr{})
		mock.ExpectRollback()
		if _, err := repo.InsertBatch(context.Background(), []models.Stock{{Code: "X"}}); err == nil {
			t.Fatalf("expected error on final exec")
		}
	})
}

func TestPing_SQLMock(t *testing.T) {
	db, mock, err := sqlmock.New(sqlmock.MonitorPingsOption(true))
	if err != nil {
		t.Fatalf("sqlmock new: %v", err)
	}
	defer func() { _ = db.Close() }()

	mock.ExpectPing()
	if err := NewPostgresRepository(db).Ping(context.Background()); err != nil {
		t.Fatalf("ping: %v", err)
	}
}
