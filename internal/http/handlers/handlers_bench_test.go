package handlers

import (
	"net/http"
	"net/http/httptest"
	"testing"
)

func BenchmarkStandings(b *testing.B) {
	_, r := newTestHandler(b, leagueLog(b), nil)
	req := httptest.NewRequest(http.MethodGet, "/standings?year=2024", nil)

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		rr := httptest.NewRecorder()
		r.ServeHTTP(rr, req)
	}
}

func BenchmarkTeamRecord(b *testing.B) {
	_, r := newTestHandler(b, leagueLog(b), nil)
	req := httptest.NewRequest(http.MethodGet, "/teams/blue/record", nil)

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		rr := httptest.NewRecorder()
		r.ServeHTTP(rr, req)
	}
}

func BenchmarkGameByID(b *testing.B) {
	_, r := newTestHandler(b, leagueLog(b), nil)
	req := httptest.NewRequest(http.MethodGet, "/games/summer-2024-r1", nil)

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		rr := httptest.NewRecorder()
		r.ServeHTTP(rr, req)
	}
}
