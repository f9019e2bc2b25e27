// @title           Kariyer Kamulog API
// @version         1.0
// @description     Career platform backend: accounts, bank-transfer subscriptions, consultant chat, CV tools and job listings.
// @BasePath        /api/v1

package main

import "kariyer_backend/internal/cli"

func main() {
	cli.Execute()
}
