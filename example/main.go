// Command example demonstrates basic fetchclient usage against a local
// test server.
package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"net/http/httptest"
	"time"

	"github.com/helio-labs/fetchclient"
)

func main() {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/users":
			w.Header().Set("Content-Type", "application/json")
			fmt.Fprintln(w, `[{"id":1,"name":"ada"},{"id":2,"name":"grace"}]`)
		default:
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusNotFound)
			fmt.Fprintln(w, `{"message":"not found"}`)
		}
	}))
	defer server.Close()

	client := fetchclient.New(
		fetchclient.WithBaseURL(server.URL),
		fetchclient.WithTimeout(5*time.Second),
		fetchclient.WithServiceName("example-client"),
	)

	client.Interceptors.Use(fetchclient.UserAgentInterceptor("fetchclient-example/1.0"))
	client.Interceptors.Use(fetchclient.RequestIDInterceptor("X-Request-Id"))

	ctx := context.Background()

	resp, err := client.Get(ctx, "/users",
		fetchclient.WithQueryParams(fetchclient.NewParams().
			Set("limit", 10).
			Set("tags", []string{"admin", "active"})),
	)
	if err != nil {
		log.Fatalf("list users: %v", err)
	}

	var users []struct {
		ID   int    `json:"id"`
		Name string `json:"name"`
	}
	if err := resp.Decode(&users); err != nil {
		log.Fatalf("decode users: %v", err)
	}
	fmt.Printf("got %d users, status %d\n", len(users), resp.StatusCode)

	_, err = client.Post(ctx, "/missing", map[string]any{
		"name":     "alan",
		"nickname": fetchclient.Absent, // stripped from the payload
	})
	if fetchclient.HasStatus(err, http.StatusNotFound) {
		fmt.Println("expected failure:", err)
	}
}
