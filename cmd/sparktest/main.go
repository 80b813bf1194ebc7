package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"strings"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"

	"github.com/muhammedrahil/cloudspark/pkg/cloudspark"
)

func main() {
	// Define command-line flags
	region := flag.String("region", "us-east-1", "AWS region")
	bucket := flag.String("bucket", "", "S3 bucket name")
	accessKey := flag.String("access-key", "", "AWS access key ID")
	secretKey := flag.String("secret-key", "", "AWS secret access key")
	endpoint := flag.String("endpoint", "", "Custom S3 endpoint (for MinIO, etc.)")
	usePathStyle := flag.Bool("use-path-style", false, "Use path-style addressing")
	expiresIn := flag.Int64("expires-in", 0, "Validity window in seconds for presigned URLs (0 = default)")
	createBucket := flag.Bool("create-bucket", false, "Create bucket if it doesn't exist")

	// Define commands
	command := flag.String("command", "help", "Command to execute: upload, download, delete, list, url-create, url-download, url-delete, cors, policy, public-access, decode-policy, help")
	objectKey := flag.String("key", "", "Object key for operations")
	filePath := flag.String("file", "", "File path for upload/download")
	block := flag.Bool("block", true, "Block public access (public-access command)")
	policyArg := flag.String("policy", "", "Base64 policy document (decode-policy command)")

	// MinIO shortcut
	useMinio := flag.Bool("use-minio", false, "Use MinIO defaults (sets endpoint, path-style, etc.)")
	minioEndpoint := flag.String("minio-endpoint", "http://localhost:9000", "MinIO server endpoint")

	flag.Parse()

	// Apply MinIO defaults if requested
	if *useMinio {
		*endpoint = *minioEndpoint
		*usePathStyle = true
		*createBucket = true
		if *accessKey == "" {
			*accessKey = "minioadmin"
		}
		if *secretKey == "" {
			*secretKey = "minioadmin"
		}
	}

	// Check for environment variables if flags not provided
	if *accessKey == "" {
		*accessKey = os.Getenv("AWS_ACCESS_KEY_ID")
	}
	if *secretKey == "" {
		*secretKey = os.Getenv("AWS_SECRET_ACCESS_KEY")
	}

	cmd := strings.ToLower(*command)

	if cmd == "decode-policy" {
		if *policyArg == "" {
			log.Fatal("A policy document is required for decode-policy")
		}
		pretty, err := cloudspark.PolicyDecode(*policyArg)
		if err != nil {
			log.Fatalf("Decode failed: %v", err)
		}
		fmt.Println(pretty)
		return
	}

	if cmd == "help" || cmd == "" {
		printHelp()
		return
	}

	if *bucket == "" {
		log.Fatal("Bucket name is required")
	}

	ctx := context.Background()
	session, err := cloudspark.New(ctx, cloudspark.Config{
		Region:          *region,
		AccessKeyID:     *accessKey,
		SecretAccessKey: *secretKey,
		Endpoint:        *endpoint,
		UsePathStyle:    *usePathStyle,
	})
	if err != nil {
		log.Fatalf("Failed to create session: %v", err)
	}

	if *createBucket {
		if err := session.CreateBucket(ctx, *bucket); err != nil {
			log.Fatalf("Failed to create bucket: %v", err)
		}
	} else if err := session.Connect(*bucket); err != nil {
		log.Fatalf("Failed to bind bucket: %v", err)
	}

	var urlOpts []cloudspark.URLOption
	if *expiresIn > 0 {
		urlOpts = append(urlOpts, cloudspark.WithExpirySeconds(*expiresIn))
	}

	// Execute command
	switch cmd {
	case "upload":
		if *objectKey == "" || *filePath == "" {
			log.Fatal("Object key and file path are required for upload")
		}

		file, err := os.Open(*filePath)
		if err != nil {
			log.Fatalf("Failed to open file: %v", err)
		}
		defer file.Close()

		fmt.Printf("Uploading %s to %s...\n", *filePath, *objectKey)
		startTime := time.Now()
		err = session.UploadObject(ctx, file, *objectKey)
		duration := time.Since(startTime)
		if err != nil {
			log.Fatalf("Upload failed: %v", err)
		}
		fmt.Printf("Upload successful (took %v)\n", duration)

	case "download":
		if *objectKey == "" || *filePath == "" {
			log.Fatal("Object key and file path are required for download")
		}

		fmt.Printf("Downloading %s to %s...\n", *objectKey, *filePath)
		obj, err := session.GetObject(ctx, *objectKey)
		if err != nil {
			log.Fatalf("Download failed: %v", err)
		}
		defer obj.Body.Close()

		file, err := os.Create(*filePath)
		if err != nil {
			log.Fatalf("Failed to create file: %v", err)
		}
		defer file.Close()

		bytesWritten, err := io.Copy(file, obj.Body)
		if err != nil {
			log.Fatalf("Failed to write file: %v", err)
		}
		fmt.Printf("Download successful: %d bytes (%s)\n", bytesWritten, obj.Meta.ContentType)

	case "delete":
		if *objectKey == "" {
			log.Fatal("Object key is required for delete")
		}

		if err := session.DeleteObject(ctx, *objectKey); err != nil {
			log.Fatalf("Delete failed: %v", err)
		}
		fmt.Println("Delete successful")

	case "list":
		metas, err := session.ListObjects(ctx)
		if err != nil {
			log.Fatalf("List failed: %v", err)
		}
		fmt.Printf("%d object(s) in %s:\n", len(metas), *bucket)
		for _, m := range metas {
			fmt.Printf("  %s\t%d bytes\t%s\n", m.Key, m.Size, m.LastModified.Format(time.RFC3339))
		}

	case "url-create":
		if *objectKey == "" {
			log.Fatal("Object key is required for a form-upload URL")
		}

		req := cloudspark.CreateURLRequest{ObjectKey: *objectKey}
		if *expiresIn > 0 {
			req.ExpiresIn = aws.Int64(*expiresIn)
		}
		upload, err := session.PresignedCreateURL(ctx, req)
		if err != nil {
			log.Fatalf("Failed to presign upload: %v", err)
		}
		fmt.Printf("Form-upload endpoint for %s:\n%s\n\nForm fields:\n", *objectKey, upload.URL)
		for k, v := range upload.Fields {
			fmt.Printf("  %s=%s\n", k, v)
		}

		pretty, err := cloudspark.PolicyDecode(upload.Fields["policy"])
		if err != nil {
			log.Fatalf("Failed to decode policy: %v", err)
		}
		fmt.Printf("\nSigned policy:\n%s\n", pretty)

	case "url-download":
		if *objectKey == "" {
			log.Fatal("Object key is required for a download URL")
		}

		url, err := session.PresignedGetURL(ctx, *objectKey, urlOpts...)
		if err != nil {
			log.Fatalf("Failed to presign download: %v", err)
		}
		fmt.Printf("Download URL for %s:\n%s\n", *objectKey, url)
		fmt.Println("\nTo use this URL with curl:")
		fmt.Printf("curl \"%s\" -o downloaded-file\n", url)

	case "url-delete":
		if *objectKey == "" {
			log.Fatal("Object key is required for a delete URL")
		}

		url, err := session.PresignedDeleteURL(ctx, *objectKey, urlOpts...)
		if err != nil {
			log.Fatalf("Failed to presign delete: %v", err)
		}
		fmt.Printf("Delete URL for %s:\n%s\n", *objectKey, url)
		fmt.Println("\nTo use this URL with curl:")
		fmt.Printf("curl -X DELETE \"%s\"\n", url)

	case "cors":
		if err := session.SetBucketCors(ctx, nil); err != nil {
			log.Fatalf("Failed to set CORS: %v", err)
		}
		rules, err := session.GetBucketCors(ctx)
		if err != nil {
			log.Fatalf("Failed to read CORS: %v", err)
		}
		fmt.Printf("CORS configured with %d rule(s)\n", len(rules))

	case "policy":
		if err := session.SetBucketPolicy(ctx, nil); err != nil {
			log.Fatalf("Failed to set bucket policy: %v", err)
		}
		policy, err := session.GetBucketPolicy(ctx)
		if err != nil {
			log.Fatalf("Failed to read bucket policy: %v", err)
		}
		fmt.Printf("Bucket policy set: version %s, %d statement(s)\n", policy.Version, len(policy.Statement))

	case "public-access":
		if err := session.PublicAccess(ctx, *block); err != nil {
			log.Fatalf("Failed to set public access: %v", err)
		}
		fmt.Printf("Public access block set to %v\n", *block)

	default:
		log.Fatalf("Unknown command: %s", *command)
	}
}

func printHelp() {
	fmt.Println("cloudspark test application")
	fmt.Println("\nCommands:")
	fmt.Println("  upload         Upload a file")
	fmt.Println("  download       Download a file")
	fmt.Println("  delete         Delete an object")
	fmt.Println("  list           List the objects in the bucket")
	fmt.Println("  url-create     Generate a signed browser-form upload")
	fmt.Println("  url-download   Generate a pre-signed download URL")
	fmt.Println("  url-delete     Generate a pre-signed delete URL")
	fmt.Println("  cors           Apply and print the default CORS rules")
	fmt.Println("  policy         Apply and print the default bucket policy")
	fmt.Println("  public-access  Set the public-access block")
	fmt.Println("  decode-policy  Decode a Base64 policy document")
	fmt.Println("  help           Show this help message")
	fmt.Println("\nFlags:")
	flag.PrintDefaults()
	fmt.Println("\nExamples:")
	fmt.Println("  Upload a file to AWS S3:")
	fmt.Println("    sparktest -bucket my-bucket -access-key AKIAXXXX -secret-key XXXX -command upload -key test/file.txt -file ./local-file.txt")
	fmt.Println("\n  Upload a file to MinIO:")
	fmt.Println("    sparktest -use-minio -bucket my-bucket -command upload -key test/file.txt -file ./local-file.txt")
	fmt.Println("\n  Generate a signed browser-form upload:")
	fmt.Println("    sparktest -bucket my-bucket -command url-create -key uploads/* -expires-in 600")
}
