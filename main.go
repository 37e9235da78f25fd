// Package classification hopehouse API
//
// Hope House Referral API
//
// Terms Of Service:
//
// there are no TOS at this moment, use at your own risk we take no responsibility
//
//     Schemes: https
//     BasePath: /api/v1
//     Version: 0.0.1
//
//     Consumes:
//     - application/json
//
//     Produces:
//     - application/json
//
// swagger:meta
package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"math/rand"
	"net/http"
	"os"
	"time"

	_ "github.com/go-sql-driver/mysql"
	"github.com/gorilla/mux"
	"github.com/jinzhu/gorm"

	"hopehouse_backend/app/core"
	"hopehouse_backend/app/referralbundle"
)

var (
	ormDB *gorm.DB
)

func init() {
	rand.Seed(time.Now().UnixNano())
}

func main() {

	log.SetFlags(log.LstdFlags | log.Lshortfile)
	log.Println("----")
	startServer()
	log.Println("----")

}

func initBundles(store *referralbundle.SheetStore) []core.Bundle {
	return []core.Bundle{
		referralbundle.NewReferralBundle(ormDB, store),
	}
}

// Server starten mit: hopehouse_backend -configFile=/var/hopehouse/config.json
func startServer() error {

	os.MkdirAll("logs", 0755)
	f, err := os.OpenFile(fmt.Sprintf("logs/log_runtime_%s", time.Now().Format("2006-01-02")), os.O_APPEND|os.O_WRONLY|os.O_CREATE, 0644)
	if err != nil {
		log.Println(err)
	}
	defer f.Close()

	configFile := ""
	flag.StringVar(&configFile, "configFile", "config.json", "a string")
	flag.Parse()

	if configFile == "" {
		configFile = "config.json"
	}
	log.Println("using configfile: ", configFile)

	file, _ := os.Open(configFile)
	decoder := json.NewDecoder(file)
	core.Config = core.Configuration{}
	err = decoder.Decode(&core.Config)
	if err != nil {
		log.Println("error: ", err)
	}

	core.GetEnvironmentConfig(&core.Config)

	dataSourceName := fmt.Sprintf("%s:%s@tcp(%s:%d)/%s?parseTime=true", core.Config.Database.User, core.Config.Database.Password, core.Config.Database.Host, core.Config.Database.Port, core.Config.Database.Database)
	log.Print("connecting to database... ")
	ormdb, err := gorm.Open("mysql", dataSourceName)
	for err != nil {
		log.Println(err)
		time.Sleep(3 * time.Second)
		ormdb, err = gorm.Open("mysql", dataSourceName)
	}
	log.Println("done")

	ormdb.Exec("SET NAMES utf8")
	ormdb.Exec("SET time_zone = \"+00:00\"")
	ormDB = ormdb
	ormDB.LogMode(core.Config.Database.Debug)

	if core.Config.Database.DoAutoMigrate {
		log.Print("migrating tables... ")
		ormDB.AutoMigrate(&core.SystemLog{}, &referralbundle.Referral{}, &referralbundle.MailingListEntry{})
		log.Println("done")
	}

	store, err := referralbundle.NewSheetStore(core.Config.Referral.WorkbookPath, core.Config.Referral.Timezone)
	if err != nil {
		log.Fatal(err)
	}

	r := mux.NewRouter()
	var s *mux.Router
	if core.Config.Server.Hostname != "" {
		s = r.Host(core.Config.Server.Hostname).PathPrefix("/api/v1/").Subrouter()
	} else {
		s = r.PathPrefix("/api/v1/").Subrouter()
	}

	log.Print("Adding routes... ")
	for _, b := range initBundles(store) {
		for _, route := range b.GetRoutes() {
			s.Handle(route.Path, middleWare(f, route.Handler)).Methods(route.Method)
		}
	}
	log.Println("done")

	address := fmt.Sprintf(":%d", core.Config.Server.InternalPort)
	log.Println(address)

	if core.Config.Server.WithSSL {
		log.Fatal(http.ListenAndServeTLS(address, core.Config.Server.SSLCertFile, core.Config.Server.SSLKeyFile, r))
	} else {
		log.Fatal(http.ListenAndServe(address, r))
	}

	return nil
}

func middleWare(f *os.File, h http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now().UnixNano()

		log.Println(r.Method)
		log.Println(r.RequestURI)

		sqlCmd := `INSERT INTO system_log (log_type, log_date, log_title, log_text) VALUES (?, NOW(), ?, ?)`
		_, err := ormDB.DB().Exec(sqlCmd, 1, "open Route", r.Method+" "+r.RequestURI)
		if err != nil {
			log.Println(err)
		}

		h.ServeHTTP(w, r) // call original

		ende := time.Now().UnixNano()
		dauer := ende - start

		text := fmt.Sprintf("Time: %s - Dauer: %f - Route: %s\n", time.Now().Format("2006-01-02 15:04:05"), float64(dauer)/1000000000.0, r.RequestURI)
		if f != nil {
			f.WriteString(text)
		}
	})
}
